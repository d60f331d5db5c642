package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/http/requestutil"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
)

// Refresher runs one fetch, dedupe and snapshot cycle on demand.
type Refresher interface {
	Refresh(ctx context.Context) (roster.View, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

type refreshResponse struct {
	Status      string        `json:"status"`
	Counts      roster.Counts `json:"counts"`
	RefreshedAt time.Time     `json:"refreshedAt"`
}

// RefreshRoster pulls the roster from upstream immediately and writes the
// day's snapshot. Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	view, err := h.refresher.Refresh(r.Context())
	if err != nil {
		logging.Warn(logger, "admin roster refresh failed", slog.Any(logging.FieldError, err))
		writeError(w, r, http.StatusBadGateway, "failed to refresh roster", logger)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Status:      "ok",
		Counts:      view.Counts,
		RefreshedAt: view.RefreshedAt,
	}, logger)
	logging.Info(logger, "admin roster refreshed", slog.Int(logging.FieldCount, view.Counts.All))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	token, ok := requestutil.BearerToken(r)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
