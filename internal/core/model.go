package core

import (
	"fmt"
	"strings"
	"time"
)

// SpamCheckRequest is a single form submission to classify. It is built
// fresh for every check and never persisted.
type SpamCheckRequest struct {
	Name         string
	Email        string
	Message      string
	CustomFields map[string]string
	EndUserIP    string
}

// SpamCheckResult is the verdict for one spam check. It is immutable once
// constructed; the reasons slice is copied on the way in and on the way out
// so callers can never alias internal state.
type SpamCheckResult struct {
	spam       bool
	confidence float64
	reasons    []string
}

// NewSpamCheckResult builds a result from parsed response data. A nil
// reasons slice yields an empty one.
func NewSpamCheckResult(spam bool, confidence float64, reasons []string) *SpamCheckResult {
	copied := make([]string, len(reasons))
	copy(copied, reasons)
	return &SpamCheckResult{
		spam:       spam,
		confidence: confidence,
		reasons:    copied,
	}
}

// Spam reports whether the submission was classified as spam.
func (r *SpamCheckResult) Spam() bool {
	return r.spam
}

// Confidence is the classifier's confidence in the verdict, in [0.0, 1.0].
func (r *SpamCheckResult) Confidence() float64 {
	return r.confidence
}

// Reasons returns a copy of the classifier's reasons. Never nil.
func (r *SpamCheckResult) Reasons() []string {
	copied := make([]string, len(r.reasons))
	copy(copied, r.reasons)
	return copied
}

// ToMap renders the result as a plain map, the inverse of the response
// shape it was parsed from.
func (r *SpamCheckResult) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"spam":       r.spam,
		"confidence": r.confidence,
		"reasons":    r.Reasons(),
	}
}

// Summary renders a one-line human-readable verdict. Reasons are only shown
// for spam; a spam result with no reasons keeps the trailing separator so
// the output shape is stable for downstream parsing.
func (r *SpamCheckResult) Summary() string {
	pct := r.confidence * 100
	if r.spam {
		return fmt.Sprintf("Spam detected (%.1f%% confidence): %s", pct, strings.Join(r.reasons, ", "))
	}
	return fmt.Sprintf("Content appears legitimate (%.1f%% confidence)", pct)
}

// CacheEntry is a cached verdict keyed by submitter email.
type CacheEntry struct {
	Email      string
	Spam       bool
	Confidence float64
	LastSeen   time.Time
	ExpiresAt  time.Time
}
