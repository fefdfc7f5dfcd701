package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/metrics"
	"github.com/its-bede/is-it-spam-go/internal/utils"
	"github.com/its-bede/is-it-spam-go/internal/whitelist"
)

// SpamCheckService orchestrates a single check: whitelist bypass, cache
// lookup, remote classification, cache write-back. It holds no per-call
// state and is safe for concurrent use.
type SpamCheckService struct {
	checker        SpamChecker
	cache          CacheRepository
	logger         *zap.Logger
	collector      metrics.Collector
	whitelist      *whitelist.Checker
	textProcessor  *utils.TextProcessor
	cacheEnabled   bool
	cacheTTL       time.Duration
	maxMessageSize int
}

// NewSpamCheckService creates a new spam check service.
func NewSpamCheckService(
	checker SpamChecker,
	cache CacheRepository,
	logger *zap.Logger,
	collector metrics.Collector,
	wl *whitelist.Checker,
	textProcessor *utils.TextProcessor,
	cacheEnabled bool,
	cacheTTL time.Duration,
	maxMessageSize int,
) *SpamCheckService {
	return &SpamCheckService{
		checker:        checker,
		cache:          cache,
		logger:         logger,
		collector:      collector,
		whitelist:      wl,
		textProcessor:  textProcessor,
		cacheEnabled:   cacheEnabled,
		cacheTTL:       cacheTTL,
		maxMessageSize: maxMessageSize,
	}
}

// Check classifies a submission. Cached and whitelisted verdicts never hit
// the network.
func (s *SpamCheckService) Check(ctx context.Context, req *SpamCheckRequest) (*SpamCheckResult, error) {
	if s.whitelist != nil && s.whitelist.IsWhitelisted(req.Email) {
		s.logger.Info("Skipping spam check for whitelisted domain",
			zap.String("email", req.Email))
		s.collector.WhitelistBypass()
		return NewSpamCheckResult(false, 1.0, nil), nil
	}

	if s.cacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, req.Email); err == nil {
			s.logger.Debug("Cache hit for submitter", zap.String("email", req.Email))
			s.collector.CacheHit()
			return NewSpamCheckResult(entry.Spam, entry.Confidence, nil), nil
		}
	}

	if s.textProcessor != nil {
		req = &SpamCheckRequest{
			Name:         req.Name,
			Email:        req.Email,
			Message:      s.textProcessor.Process(req.Message, s.maxMessageSize),
			CustomFields: req.CustomFields,
			EndUserIP:    req.EndUserIP,
		}
	}

	start := time.Now()
	result, err := s.checker.CheckSpam(ctx, req)
	if err != nil {
		s.collector.CheckFailed(failureKind(err))
		return nil, err
	}

	outcome := metrics.OutcomeLegitimate
	if result.Spam() {
		outcome = metrics.OutcomeSpam
	}
	s.collector.CheckCompleted(outcome, time.Since(start))

	if s.cacheEnabled && s.cache != nil {
		entry := &CacheEntry{
			Email:      req.Email,
			Spam:       result.Spam(),
			Confidence: result.Confidence(),
			LastSeen:   time.Now(),
			ExpiresAt:  time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update verdict cache", zap.Error(err))
		}
	}

	return result, nil
}

// HealthCheck probes the remote service through the configured checker.
func (s *SpamCheckService) HealthCheck(ctx context.Context) (bool, error) {
	return s.checker.HealthCheck(ctx)
}

// failureKind maps a checker error onto a metrics label.
func failureKind(err error) string {
	switch err.(type) {
	case *ValidationError:
		return metrics.FailureValidation
	case *RateLimitError:
		return metrics.FailureRateLimit
	default:
		return metrics.FailureAPI
	}
}
