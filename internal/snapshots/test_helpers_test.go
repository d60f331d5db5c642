package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
)

func simpleSnapshot(date string) roster.Snapshot {
	return roster.Snapshot{
		Date: date,
		Raw: roster.Roster{
			Pitchers:   []string{"Doe, John"},
			AllPlayers: []string{"Doe, John"},
		},
		View: roster.View{
			AllPlayers: []roster.PlayerEntry{{Name: "Doe, John", Role: roster.RolePitcher, ProfilePath: "/player-profile/Doe%2C%20John/pitcher"}},
			Counts:     roster.Counts{All: 1, Pitchers: 1},
		},
		Source: "fixture",
	}
}

func newTestWriter(t *testing.T, retention int, now time.Time) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retention)
	w.now = func() time.Time { return now }
	return w
}

func writeSnapshot(t *testing.T, w *Writer, date string, snap roster.Snapshot) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteRosterSnapshot(date, snap); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func writeSimpleSnapshot(t *testing.T, w *Writer, date string) {
	t.Helper()
	writeSnapshot(t, w, date, simpleSnapshot(date))
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(RosterSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}
