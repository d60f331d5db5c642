package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
)

const defaultRateInterval = time.Minute

// rateLimitedProvider wraps a RosterProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     RosterProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a RosterProvider that allows one call per
// interval. The first call goes through immediately; later calls block until
// the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next RosterProvider, interval time.Duration, logger *slog.Logger) RosterProvider {
	if interval <= 0 {
		interval = defaultRateInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return roster.Roster{}, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", logging.FieldError, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return roster.Roster{}, ctxErr
		}
		return roster.Roster{}, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch")
	return p.next.FetchRoster(ctx)
}
