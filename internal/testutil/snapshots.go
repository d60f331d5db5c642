package testutil

import (
	"errors"
	"testing"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a snapshot of SampleRoster for the date.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, date string) {
	t.Helper()
	if err := writeSnapshotPayload(w, date); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func writeSnapshotPayload(w *snapshots.Writer, date string) error {
	if w == nil {
		return errors.New("snapshot writer is nil")
	}
	raw := SampleRoster()
	view, _ := NewRosterService(&raw).View()
	return w.WriteRosterSnapshot(date, roster.Snapshot{
		Date:   date,
		Raw:    raw,
		View:   view,
		Source: "test",
	})
}

// SnapshotPath returns the expected file path for a snapshot date.
func SnapshotPath(w *snapshots.Writer, date string) string {
	return snapshots.RosterSnapshotPath(w.BasePath(), date)
}
