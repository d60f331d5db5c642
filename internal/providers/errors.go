package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderUnavailable is returned when a decorator has no provider to call.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// UpstreamError is a non-success response from the upstream API. Detail holds
// the API's own error message when it sent one.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// IsRetryable reports whether another attempt could succeed. Client errors
// such as a bad token are permanent; rate limits, server errors and transport
// failures are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if upErr, ok := AsUpstreamError(err); ok {
		return upErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
