package di

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/adapters/httpserver"
	"github.com/its-bede/is-it-spam-go/internal/config"
	"github.com/its-bede/is-it-spam-go/internal/core"
	"github.com/its-bede/is-it-spam-go/internal/factory"
	"github.com/its-bede/is-it-spam-go/internal/form"
	"github.com/its-bede/is-it-spam-go/internal/gate"
	"github.com/its-bede/is-it-spam-go/internal/logging"
	"github.com/its-bede/is-it-spam-go/internal/metrics"
	"github.com/its-bede/is-it-spam-go/internal/ports"
	"github.com/its-bede/is-it-spam-go/internal/utils"
	"github.com/its-bede/is-it-spam-go/internal/whitelist"
)

// BuildContainer creates and configures the dependency injection container
// for the HTTP gateway.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []interface{}{
		config.New,
		logging.InitLogger,
		factory.NewCheckerFactory,
		factory.NewCacheFactory,

		func(f *factory.CheckerFactory) (core.SpamChecker, error) {
			return f.Client()
		},
		func(f *factory.CacheFactory) (core.CacheRepository, error) {
			return f.CreateCacheRepository()
		},
		func(f *factory.CacheFactory) (time.Duration, error) {
			return f.GetCacheTTL()
		},
		func(f *factory.CacheFactory) bool {
			return f.IsCacheEnabled()
		},

		func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
			return whitelist.NewChecker(cfg.GetSpam().WhitelistedDomains, logger)
		},
		func(logger *zap.Logger) *utils.TextProcessor {
			return utils.NewTextProcessor(logger)
		},
		func(cfg *config.Config) int {
			return cfg.GetSpam().MaxMessageSize
		},

		prometheus.NewRegistry,
		func(registry *prometheus.Registry) metrics.Collector {
			return metrics.NewPrometheusCollector(registry)
		},

		core.NewSpamCheckService,

		func(cfg *config.Config) gate.Options {
			gateCfg := cfg.GetGate()
			opts := gate.Options{
				FormParam:      gateCfg.FormParam,
				TrackEndUserIP: cfg.GetAPI().TrackEndUserIP,
			}
			if gateCfg.RedirectPath != "" {
				opts.OnSpam = &gate.SpamHandling{
					Redirect: gate.Literal(gateCfg.RedirectPath),
					Notice:   gateCfg.Notice,
					Alert:    gateCfg.Alert,
				}
			}
			return opts
		},
		func() gate.Redirector {
			return gate.NewCookieRedirector()
		},
		func(service *core.SpamCheckService, redirector gate.Redirector, logger *zap.Logger, opts gate.Options) *gate.Gate {
			return gate.New(service, redirector, logger, opts)
		},

		func(opts gate.Options) *form.Extractor {
			return form.NewExtractor(opts.FormParam)
		},

		func(
			service *core.SpamCheckService,
			g *gate.Gate,
			extractor *form.Extractor,
			registry *prometheus.Registry,
			logger *zap.Logger,
			cfg *config.Config,
		) ports.Gateway {
			return httpserver.New(service, g, extractor, registry, logger, cfg.GetServer().ListenAddress)
		},
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
