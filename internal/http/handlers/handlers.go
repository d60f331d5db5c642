package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	approster "github.com/carson3m/TrackmanAnalyticsProgram/internal/app/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/dedup"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/poller"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/snapshots"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/timeutil"
)

const (
	// maxDedupeBody caps POST /dedupe payloads.
	maxDedupeBody = 1 << 20
	// maxDedupeNames bounds a single ad-hoc request; clustering is quadratic.
	maxDedupeNames = 5000
	// maxNameRunes bounds one client supplied name; token comparison cost
	// grows with the product of the two lengths.
	maxNameRunes = 256
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	// nameRule counts runes for strings.
	nameRule = fmt.Sprintf("max=%d", maxNameRunes)
)

// Handler wires HTTP routes to the roster service.
type Handler struct {
	svc      *approster.Service
	snaps    snapshots.Store
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. snaps and statusFn may be nil.
func NewHandler(svc *approster.Service, snaps snapshots.Store, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		snaps:    snaps,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Roster returns the deduplicated roster. With ?date=YYYY-MM-DD it serves the
// stored snapshot for that day instead of the live view.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		view, ok := h.svc.View()
		if !ok {
			writeError(w, r, http.StatusServiceUnavailable, "roster not loaded yet", logger)
			return
		}
		writeJSON(w, http.StatusOK, view, logger)
		return
	}

	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	if h.snaps == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshots not configured", logger)
		return
	}
	snap, err := h.snaps.LoadRoster(date)
	switch {
	case errors.Is(err, snapshots.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "snapshot not found", logger)
		return
	case err != nil:
		logging.Error(logger, "snapshot load failed", err, logging.FieldDate, date)
		writeError(w, r, http.StatusBadGateway, "snapshot unavailable", logger)
		return
	}
	logging.Info(logger, "served roster snapshot", logging.FieldDate, date, logging.FieldCount, snap.View.Counts.All)
	writeJSON(w, http.StatusOK, snap.View, logger)
}

// RosterCategory returns the sorted entries of one tab (all, pitchers, batters).
func (h *Handler) RosterCategory(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	category, ok := roster.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown category", logger)
		return
	}
	entries, ok := h.svc.Entries(category)
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "roster not loaded yet", logger)
		return
	}
	if entries == nil {
		entries = []roster.PlayerEntry{}
	}
	writeJSON(w, http.StatusOK, entries, logger)
}

type clustersResponse struct {
	Category roster.Category `json:"category"`
	Clusters []dedup.Cluster `json:"clusters"`
}

// Clusters shows which raw spellings were merged for a category.
func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	category, ok := roster.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown category", logger)
		return
	}
	clusters, ok := h.svc.CategoryClusters(category)
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "roster not loaded yet", logger)
		return
	}
	writeJSON(w, http.StatusOK, clustersResponse{Category: category, Clusters: clusters}, logger)
}

// SnapshotDates lists the days with a stored roster snapshot.
func (h *Handler) SnapshotDates(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.snaps == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshots not configured", logger)
		return
	}
	dates, err := h.snaps.Dates()
	if err != nil {
		logging.Error(logger, "snapshot listing failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to list snapshots", logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"dates": dates}, logger)
}

type dedupeRequest struct {
	Names []string `json:"names"`
}

type dedupeResponse struct {
	Names    []string        `json:"names"`
	Clusters []dedup.Cluster `json:"clusters"`
}

// Dedupe clusters an arbitrary list of names.
func (h *Handler) Dedupe(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var req dedupeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDedupeBody))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large", logger)
			return
		}
		if errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, "request body required", logger)
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid JSON body", logger)
		return
	}
	if len(req.Names) > maxDedupeNames {
		writeError(w, r, http.StatusRequestEntityTooLarge, "too many names", logger)
		return
	}
	if err := validate.Var(req.Names, "dive,"+nameRule); err != nil {
		writeError(w, r, http.StatusBadRequest, "name too long", logger)
		return
	}

	clusters := h.svc.Clusters(approster.AdHocCategory, req.Names)
	names := make([]string, len(clusters))
	for i, c := range clusters {
		names[i] = c.Representative
	}
	writeJSON(w, http.StatusOK, dedupeResponse{Names: names, Clusters: clusters}, logger)
}

// ResolvePlayer maps any spelling of a player to the canonical roster entry.
func (h *Handler) ResolvePlayer(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required", logger)
		return
	}
	if err := validate.Var(name, nameRule); err != nil {
		writeError(w, r, http.StatusBadRequest, "name too long", logger)
		return
	}
	if _, ok := h.svc.View(); !ok {
		writeError(w, r, http.StatusServiceUnavailable, "roster not loaded yet", logger)
		return
	}
	entry, ok := h.svc.Resolve(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "player not found", logger)
		return
	}
	writeJSON(w, http.StatusOK, entry, logger)
}

// NotFound renders unknown routes with the JSON error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", loggerFromContext(r, h.logger))
}

// MethodNotAllowed renders wrong-method requests with the JSON error envelope.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", loggerFromContext(r, h.logger))
}
