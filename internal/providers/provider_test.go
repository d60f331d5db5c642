package providers

import (
	"context"
	"testing"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
)

type testProvider struct{}

func (t *testProvider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	_ = ctx
	return roster.Roster{}, nil
}

func TestRosterProviderInterfaceImplemented(t *testing.T) {
	var _ RosterProvider = (*testProvider)(nil)
	var _ RosterProvider = NewRateLimitedProvider(&testProvider{}, 0, nil)
	var _ RosterProvider = NewRetryingProvider(&testProvider{}, nil, nil, "test", 0, 0)
}
