package testutil

import (
	"time"

	approster "github.com/carson3m/TrackmanAnalyticsProgram/internal/app/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/dedup"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/store"
)

// FixedRefresh is the RefreshedAt stamped by NewRosterService.
var FixedRefresh = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SampleRoster returns a small roster with one near-duplicate per category.
func SampleRoster() roster.Roster {
	return roster.Roster{
		Pitchers:   []string{"Doe, Jon", "Doe, John"},
		Batters:    []string{"Smith, Amy", "smith amy"},
		AllPlayers: []string{"Doe, Jon", "Doe, John", "Smith, Amy", "smith amy", "Lee, Ann"},
	}
}

// NewRosterService builds a roster service over an in-memory store with the
// default deduper and a fixed clock. A non-nil raw roster is loaded up front.
func NewRosterService(raw *roster.Roster) *approster.Service {
	svc := approster.NewService(
		store.NewMemoryStore(),
		dedup.New(dedup.DefaultVariationTable(), dedup.DefaultConfig()),
		approster.WithClock(NowAt(FixedRefresh)),
	)
	if raw != nil {
		svc.ReplaceRoster(*raw)
	}
	return svc
}
