package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements the Collector interface using Prometheus
// metrics.
type PrometheusCollector struct {
	checksTotal        *prometheus.CounterVec
	checkFailuresTotal *prometheus.CounterVec
	checkDuration      prometheus.Histogram
	cacheHitsTotal     prometheus.Counter
	whitelistBypasses  prometheus.Counter
}

// NewPrometheusCollector creates a collector with all metrics registered on
// the given registerer.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spam_gate_checks_total",
			Help: "Total number of completed spam checks.",
		}, []string{"outcome"}),
		checkFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spam_gate_check_failures_total",
			Help: "Total number of spam checks that returned an error.",
		}, []string{"kind"}),
		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spam_gate_check_duration_seconds",
			Help:    "Wall-clock duration of spam checks.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spam_gate_cache_hits_total",
			Help: "Total number of verdicts served from the cache.",
		}),
		whitelistBypasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spam_gate_whitelist_bypasses_total",
			Help: "Total number of checks skipped for whitelisted domains.",
		}),
	}

	reg.MustRegister(
		c.checksTotal,
		c.checkFailuresTotal,
		c.checkDuration,
		c.cacheHitsTotal,
		c.whitelistBypasses,
	)

	return c
}

func (c *PrometheusCollector) CheckCompleted(outcome string, duration time.Duration) {
	c.checksTotal.WithLabelValues(outcome).Inc()
	c.checkDuration.Observe(duration.Seconds())
}

func (c *PrometheusCollector) CheckFailed(kind string) {
	c.checkFailuresTotal.WithLabelValues(kind).Inc()
}

func (c *PrometheusCollector) CacheHit() {
	c.cacheHitsTotal.Inc()
}

func (c *PrometheusCollector) WhitelistBypass() {
	c.whitelistBypasses.Inc()
}
