package testutil

import (
	"context"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers"
)

// GoodProvider returns the provided roster with no error.
type GoodProvider struct {
	Roster roster.Roster
}

func (p GoodProvider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	_ = ctx
	return p.Roster, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	_ = ctx
	return roster.Roster{}, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	_ = ctx
	return roster.Roster{}, providers.ErrProviderUnavailable
}
