package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestUpstreamErrorString(t *testing.T) {
	withDetail := &UpstreamError{Provider: "backend", StatusCode: 401, Detail: "Not authenticated"}
	if got := withDetail.Error(); !strings.Contains(got, "Not authenticated") || !strings.Contains(got, "401") {
		t.Fatalf("expected detail and status, got %q", got)
	}
	bare := &UpstreamError{Provider: "backend", StatusCode: 502}
	if got := bare.Error(); !strings.Contains(got, "502") {
		t.Fatalf("expected status in message, got %q", got)
	}
	if _, ok := AsUpstreamError(fmt.Errorf("fetch: %w", bare)); !ok {
		t.Fatalf("expected to unwrap upstream error")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"unavailable", ErrProviderUnavailable, false},
		{"rate limit", &RateLimitError{StatusCode: 429}, true},
		{"server error", &UpstreamError{StatusCode: 503}, true},
		{"unauthorized", &UpstreamError{StatusCode: 401}, false},
		{"transport", errors.New("connection reset"), true},
	}
	for _, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("%s: IsRetryable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
