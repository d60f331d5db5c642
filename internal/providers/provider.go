package providers

import (
	"context"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
)

// RosterProvider defines how the raw roster is fetched from an upstream source.
// Implementations return names exactly as the source reports them; cleanup is
// left to the dedup layer.
type RosterProvider interface {
	FetchRoster(ctx context.Context) (roster.Roster, error)
}
