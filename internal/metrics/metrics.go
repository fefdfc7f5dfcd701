// Package metrics provides interfaces and implementations for collecting
// spam gate metrics. The Collector interface is threaded through the core
// service so every check path is counted regardless of front-end.
package metrics

import "time"

// Check outcomes used as the outcome label.
const (
	OutcomeSpam       = "spam"
	OutcomeLegitimate = "legitimate"
)

// Failure kinds used as the kind label.
const (
	FailureValidation = "validation"
	FailureRateLimit  = "rate_limit"
	FailureAPI        = "api"
)

// Collector records spam check metrics.
type Collector interface {
	// CheckCompleted records a finished check and its wall-clock duration.
	CheckCompleted(outcome string, duration time.Duration)

	// CheckFailed records a check that returned an error.
	CheckFailed(kind string)

	// CacheHit records a verdict served from the cache.
	CacheHit()

	// WhitelistBypass records a check skipped for a whitelisted domain.
	WhitelistBypass()
}
