package factory

import (
	"sync"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/adapters/isitspam"
	"github.com/its-bede/is-it-spam-go/internal/config"
	"github.com/its-bede/is-it-spam-go/internal/core"
)

// CheckerFactory builds the API client from configuration and caches
// exactly one instance until Reset is called. The cached client is safe
// for concurrent reuse; the swap itself is mutex-guarded.
type CheckerFactory struct {
	cfg    *config.Config
	logger *zap.Logger

	mu     sync.Mutex
	client core.SpamChecker
}

// NewCheckerFactory creates a new checker factory.
func NewCheckerFactory(cfg *config.Config, logger *zap.Logger) *CheckerFactory {
	return &CheckerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// Client returns the cached client, building it on first use. Missing
// credentials surface as a ConfigurationError from the client constructor.
func (f *CheckerFactory) Client() (core.SpamChecker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.client != nil {
		return f.client, nil
	}

	api := f.cfg.GetAPI()
	client, err := isitspam.NewClient(api.Key, api.Secret,
		isitspam.WithBaseURL(api.BaseURL),
		isitspam.WithTimeout(api.Timeout),
		isitspam.WithLogger(f.logger),
	)
	if err != nil {
		return nil, err
	}

	f.client = client
	return f.client, nil
}

// Reset drops the cached client so the next Client call rebuilds it from
// current configuration values.
func (f *CheckerFactory) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.client = nil
}
