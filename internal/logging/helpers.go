package logging

import (
	"context"
	"log/slog"
)

// FieldError carries the error text on failure lines.
const FieldError = "error"

func logAt(logger *slog.Logger, level slog.Level, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, msg, args...)
}

// Debug logs at debug level. A nil logger is a no-op, as for every helper here.
func Debug(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelDebug, msg, args...)
}

// Info logs at info level.
func Info(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelInfo, msg, args...)
}

// Warn logs at warn level.
func Warn(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelWarn, msg, args...)
}

// Error logs at error level, attaching err under FieldError when non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.String(FieldError, err.Error()))
	}
	logAt(logger, slog.LevelError, msg, args...)
}
