package teststubs

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/snapshots"
)

// ErrSnapshotNotFound is the not-found error of the filesystem store.
var ErrSnapshotNotFound = snapshots.ErrNotFound

// StubProvider is a test double for providers.RosterProvider.
type StubProvider struct {
	Roster roster.Roster
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	once sync.Once
}

// FetchRoster returns the configured roster and error while tracking calls.
func (s *StubProvider) FetchRoster(ctx context.Context) (roster.Roster, error) {
	_ = ctx
	if s.Notify != nil {
		s.once.Do(func() { close(s.Notify) })
	}
	s.Calls.Add(1)
	return s.Roster, s.Err
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Rosters  map[string]roster.Snapshot // keyed by date
	LoadErr  error
	DatesErr error
}

// Dates returns the stored dates, oldest first.
func (s *StubSnapshotStore) Dates() ([]string, error) {
	if s.DatesErr != nil {
		return nil, s.DatesErr
	}
	dates := make([]string, 0, len(s.Rosters))
	for d := range s.Rosters {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates, nil
}

// LoadRoster returns the snapshot for the given date if present.
func (s *StubSnapshotStore) LoadRoster(date string) (roster.Snapshot, error) {
	if s.LoadErr != nil {
		return roster.Snapshot{}, s.LoadErr
	}
	snap, ok := s.Rosters[date]
	if !ok {
		return roster.Snapshot{}, ErrSnapshotNotFound
	}
	return snap, nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]roster.Snapshot // keyed by date
	Err     error
}

// WriteRosterSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteRosterSnapshot(date string, snapshot roster.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	if w.Written == nil {
		w.Written = make(map[string]roster.Snapshot)
	}
	w.Written[date] = snapshot
	return nil
}

// Count returns how many dates have been written.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}

// Get returns the snapshot written for a date.
func (w *StubSnapshotWriter) Get(date string) (roster.Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap, ok := w.Written[date]
	return snap, ok
}
