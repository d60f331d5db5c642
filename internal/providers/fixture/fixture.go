package fixture

import (
	"context"
	"slices"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
)

var (
	pitchers = []string{
		"Doe, John",
		"Doe, Jon",
		"doe john",
		"Ramirez, Carlos",
		"Ramirez, Carlos2",
		"Thornton, Kenneth",
		"Thornton, Ken",
	}
	batters = []string{
		"Smith, Amy",
		"Smith Amy",
		"Kowalski, Connor",
		"Kowalski, Conner",
		"Nakamura, Josh",
		"Nakamura, Joshua",
		"Okafor, Evan",
	}
)

// Provider returns a static roster with the kinds of spelling drift seen in
// uploaded game files, useful for local testing and bootstrapping.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return "fixture"
}

// FetchRoster returns a fresh copy of the fixture roster.
func (p *Provider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	if err := ctx.Err(); err != nil {
		return roster.Roster{}, err
	}
	return roster.Roster{
		Pitchers:   slices.Clone(pitchers),
		Batters:    slices.Clone(batters),
		AllPlayers: slices.Concat(pitchers, batters),
	}, nil
}
