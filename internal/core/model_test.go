package core

import (
	"reflect"
	"testing"
)

func TestSpamCheckResult_Summary(t *testing.T) {
	tests := []struct {
		name       string
		spam       bool
		confidence float64
		reasons    []string
		want       string
	}{
		{
			"spam with reasons", true, 0.95, []string{"link heavy", "known pattern"},
			"Spam detected (95.0% confidence): link heavy, known pattern",
		},
		{
			"spam without reasons keeps trailing separator", true, 0.8, nil,
			"Spam detected (80.0% confidence): ",
		},
		{
			"legitimate hides reasons", false, 0.1, []string{"ignored"},
			"Content appears legitimate (10.0% confidence)",
		},
		{
			"one decimal rounding", true, 0.123456, []string{"x"},
			"Spam detected (12.3% confidence): x",
		},
		{
			"exact half", true, 0.125, []string{"x"},
			"Spam detected (12.5% confidence): x",
		},
		{
			"full confidence", false, 1.0, nil,
			"Content appears legitimate (100.0% confidence)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSpamCheckResult(tt.spam, tt.confidence, tt.reasons)
			if got := result.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpamCheckResult_NilReasons(t *testing.T) {
	result := NewSpamCheckResult(false, 0.2, nil)
	reasons := result.Reasons()
	if reasons == nil {
		t.Fatal("Reasons() = nil, want empty slice")
	}
	if len(reasons) != 0 {
		t.Errorf("Reasons() = %v, want empty", reasons)
	}
}

func TestSpamCheckResult_DefensiveCopies(t *testing.T) {
	source := []string{"a", "b"}
	result := NewSpamCheckResult(true, 0.5, source)

	// Mutating the source after construction must not leak in.
	source[0] = "mutated"
	if got := result.Reasons(); got[0] != "a" {
		t.Errorf("result aliased its input: %v", got)
	}

	// Mutating the returned slice must not leak back.
	out := result.Reasons()
	out[1] = "mutated"
	if got := result.Reasons(); got[1] != "b" {
		t.Errorf("result exposed internal state: %v", got)
	}
}

func TestSpamCheckResult_ToMapRoundTrip(t *testing.T) {
	result := NewSpamCheckResult(true, 0.75, []string{"x"})
	want := map[string]interface{}{
		"spam":       true,
		"confidence": 0.75,
		"reasons":    []string{"x"},
	}
	if got := result.ToMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToMap() = %v, want %v", got, want)
	}
}
