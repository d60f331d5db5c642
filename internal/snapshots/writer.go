package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/timeutil"
)

// DefaultRetentionDays is used when a non-positive retention is configured.
const DefaultRetentionDays = 14

// Writer stores one roster snapshot per day and keeps the manifest in step,
// deleting days that fall outside the retention window.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time

	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteRosterSnapshot writes the roster snapshot for the given date
// (YYYY-MM-DD) and prunes snapshots older than the retention window. The
// file is left untouched when only the view's RefreshedAt differs from what
// is already on disk.
func (w *Writer) WriteRosterSnapshot(date string, snapshot roster.Snapshot) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if date == "" {
		return errors.New("date required")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}
	if snapshot.Date == "" {
		snapshot.Date = date
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := RosterSnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if existing, readErr := os.ReadFile(target); readErr != nil || !sameRoster(existing, snapshot) {
		if err := writeAtomic(target, data); err != nil {
			return err
		}
	}
	return w.updateManifest(date, snapshot)
}

func (w *Writer) updateManifest(date string, snapshot roster.Snapshot) error {
	m, _ := readManifest(ManifestPath(w.basePath), w.retentionDays)
	now := w.now().UTC()

	dates, err := listDates(w.basePath)
	if err != nil {
		return err
	}
	if _, found := slices.BinarySearch(dates, date); !found {
		dates = append(dates, date)
		slices.Sort(dates)
	}

	if m.Rosters.Counts == nil {
		m.Rosters.Counts = map[string]roster.Counts{}
	}
	m.Rosters.Counts[date] = snapshot.View.Counts
	m.Rosters.retain(w.prune(dates, now))
	m.Rosters.LastRefreshed = now
	if snapshot.Source != "" {
		m.Rosters.Source = snapshot.Source
	}
	m.Retention.RosterDays = w.retentionDays

	return writeManifest(w.basePath, m, now)
}

// sameRoster reports whether existing holds the same roster and view as snap,
// ignoring when the view was built.
func sameRoster(existing []byte, snap roster.Snapshot) bool {
	var prev roster.Snapshot
	if err := json.Unmarshal(existing, &prev); err != nil {
		return false
	}
	prev.View.RefreshedAt = time.Time{}
	snap.View.RefreshedAt = time.Time{}
	a, errA := json.Marshal(prev)
	b, errB := json.Marshal(snap)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// listDates returns the sorted dates with a snapshot file on disk.
func listDates(basePath string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(basePath, rostersDir))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if date, ok := strings.CutSuffix(e.Name(), snapshotExt); ok && !e.IsDir() {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return slices.Compact(dates), nil
}

// prune deletes snapshots dated before the retention cutoff and returns the
// dates that remain. Names that do not parse as dates are left alone.
func (w *Writer) prune(dates []string, now time.Time) []string {
	cutoff := timeutil.StartOfDay(now).AddDate(0, 0, -w.retentionDays)
	return slices.DeleteFunc(dates, func(d string) bool {
		parsed, err := timeutil.ParseDate(d)
		if err != nil || !parsed.Before(cutoff) {
			return false
		}
		_ = os.Remove(RosterSnapshotPath(w.basePath, d))
		return true
	})
}
