package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/timeutil"
)

// ErrNotFound is returned when no snapshot exists for a date.
var ErrNotFound = errors.New("snapshot not found")

// Store defines how snapshots are loaded.
type Store interface {
	LoadRoster(date string) (roster.Snapshot, error)
	Dates() ([]string, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadRoster reads the snapshot for the given date (YYYY-MM-DD) from
// {basePath}/rosters/{date}.json.
func (s *FSStore) LoadRoster(date string) (roster.Snapshot, error) {
	if s == nil {
		return roster.Snapshot{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return roster.Snapshot{}, errors.New("snapshot date required")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return roster.Snapshot{}, fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}
	var payload roster.Snapshot
	if err := s.decodeFile(RosterSnapshotPath(s.basePath, date), &payload); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return roster.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, date)
		}
		return roster.Snapshot{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	return payload, nil
}

// Dates lists the dates with a roster snapshot on disk, oldest first.
func (s *FSStore) Dates() ([]string, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	dates, err := listDates(s.basePath)
	if err != nil {
		return nil, err
	}
	valid := dates[:0]
	for _, d := range dates {
		if _, err := timeutil.ParseDate(d); err == nil {
			valid = append(valid, d)
		}
	}
	return valid, nil
}

// Latest loads the most recent roster snapshot.
func (s *FSStore) Latest() (roster.Snapshot, error) {
	dates, err := s.Dates()
	if err != nil {
		return roster.Snapshot{}, err
	}
	if len(dates) == 0 {
		return roster.Snapshot{}, ErrNotFound
	}
	return s.LoadRoster(dates[len(dates)-1])
}

func (s *FSStore) decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
