package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/http/handlers"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/http/middleware"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/metrics"
)

// NewRouter registers HTTP routes on a chi router. The admin routes are only
// mounted when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimw.Recoverer)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/roster", func(r chi.Router) {
		r.Get("/", handler.Roster)
		r.Get("/clusters", handler.Clusters)
		r.Get("/snapshots", handler.SnapshotDates)
		r.Get("/{category}", handler.RosterCategory)
	})
	r.Post("/dedupe", handler.Dedupe)
	r.Get("/players/resolve", handler.ResolvePlayer)

	if admin != nil {
		r.Post("/admin/roster/refresh", admin.RefreshRoster)
	}
	return r
}
