package metrics

import "time"

// NoopCollector discards all metrics. Used by the CLI and in tests.
type NoopCollector struct{}

// NewNoopCollector creates a collector that records nothing.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (*NoopCollector) CheckCompleted(string, time.Duration) {}
func (*NoopCollector) CheckFailed(string)                   {}
func (*NoopCollector) CacheHit()                            {}
func (*NoopCollector) WhitelistBypass()                     {}
