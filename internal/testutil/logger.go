package testutil

import (
	"bytes"
	"log/slog"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
)

// NewBufferLogger returns a debug-level text logger writing to the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Format: "text", Output: &buf})
	return logger, &buf
}
