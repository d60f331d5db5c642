package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()
	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	var body errorResponse
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "boom" || body.RequestID != "abc123" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "bad", nil)

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if _, ok := body["requestId"]; ok {
		t.Fatalf("expected requestId to be omitted, got %v", body)
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}
