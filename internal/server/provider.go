package server

import (
	"log/slog"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers/backend"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.RosterProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "backend":
		return backend.NewClient(backend.Config{
			BaseURL:  cfg.Backend.BaseURL,
			APIToken: cfg.Backend.APIToken,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}
