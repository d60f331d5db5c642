package server

import (
	"log/slog"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/metrics"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) (providers.RosterProvider, string) {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)
	limited := providers.NewRateLimitedProvider(base, cfg.Backend.RateInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.Backend.MaxAttempts, cfg.Backend.RetryDelay), name
}
