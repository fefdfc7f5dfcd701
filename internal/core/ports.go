package core

import (
	"context"
)

// SpamChecker is the outbound port to the classification API.
type SpamChecker interface {
	// CheckSpam classifies a single submission.
	CheckSpam(ctx context.Context, req *SpamCheckRequest) (*SpamCheckResult, error)

	// HealthCheck probes the remote service. A false return with a nil
	// error means the service reported itself unavailable.
	HealthCheck(ctx context.Context) (bool, error)
}

// CacheRepository stores verdicts keyed by submitter email.
type CacheRepository interface {
	// Get retrieves a cached entry for a submitter.
	Get(ctx context.Context, email string) (*CacheEntry, error)

	// Set stores a cache entry.
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry.
	Delete(ctx context.Context, email string) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}
