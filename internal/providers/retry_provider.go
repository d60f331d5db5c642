package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
	// maxRetryAfter caps an upstream Retry-After so one refresh cannot stall
	// the poller for longer than a cycle.
	maxRetryAfter = 30 * time.Second
)

// retryingProvider wraps a RosterProvider with retry/backoff behavior and
// records every attempt.
type retryingProvider struct {
	inner        RosterProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	baseDelay    time.Duration
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner RosterProvider, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxAttempts int, baseDelay time.Duration) RosterProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	r := &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		baseDelay:    baseDelay,
	}
	r.newBackOff = r.exponentialBackOff
	return r
}

func (r *retryingProvider) exponentialBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.baseDelay
	b.MaxInterval = maxBackoff
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (r *retryingProvider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	if r.inner == nil {
		return roster.Roster{}, ErrProviderUnavailable
	}

	b := r.newBackOff()
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := r.inner.FetchRoster(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if attempt == r.maxAttempts || !IsRetryable(err) {
			break
		}

		delay := r.computeDelay(err, b)
		if delay == backoff.Stop {
			break
		}
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), logging.FieldError, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return roster.Roster{}, ctx.Err()
		case <-timer.C:
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed", logging.FieldError, lastErr)
	return roster.Roster{}, lastErr
}

// computeDelay prefers the upstream Retry-After when it is longer than the
// next backoff step.
func (r *retryingProvider) computeDelay(err error, b backoff.BackOff) time.Duration {
	delay := b.NextBackOff()
	if delay == backoff.Stop {
		return delay
	}
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > delay {
		delay = min(rlErr.RetryAfter, maxRetryAfter)
	}
	return delay
}
