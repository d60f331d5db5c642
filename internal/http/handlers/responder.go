package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/http/middleware"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/http/requestutil"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
)

// errorResponse is the envelope of every non-2xx JSON body.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, errorResponse{Error: message, RequestID: reqID}, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
