package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.CheckCompleted(OutcomeSpam, 120*time.Millisecond)
	c.CheckCompleted(OutcomeSpam, 80*time.Millisecond)
	c.CheckCompleted(OutcomeLegitimate, 50*time.Millisecond)
	c.CheckFailed(FailureRateLimit)
	c.CacheHit()
	c.WhitelistBypass()

	if got := testutil.ToFloat64(c.checksTotal.WithLabelValues(OutcomeSpam)); got != 2 {
		t.Errorf("checks_total{outcome=spam} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.checksTotal.WithLabelValues(OutcomeLegitimate)); got != 1 {
		t.Errorf("checks_total{outcome=legitimate} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.checkFailuresTotal.WithLabelValues(FailureRateLimit)); got != 1 {
		t.Errorf("check_failures_total{kind=rate_limit} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.cacheHitsTotal); got != 1 {
		t.Errorf("cache_hits_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.whitelistBypasses); got != 1 {
		t.Errorf("whitelist_bypasses_total = %v, want 1", got)
	}
}

func TestPrometheusCollector_RegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusCollector(reg)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	want := map[string]bool{
		"spam_gate_check_duration_seconds":   false,
		"spam_gate_cache_hits_total":         false,
		"spam_gate_whitelist_bypasses_total": false,
	}
	for _, fam := range families {
		if _, ok := want[fam.GetName()]; ok {
			want[fam.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric %s not registered", name)
		}
	}
}
