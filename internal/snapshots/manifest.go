package snapshots

import (
	"encoding/json"
	"os"
	"time"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
)

const manifestVersion = 2

// Manifest summarizes the snapshots on disk so clients can list them without
// opening every file.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Retention   Retention   `json:"retention"`
	Rosters     RostersMeta `json:"rosters"`
}

type Retention struct {
	RosterDays int `json:"rosterDays"`
}

// RostersMeta lists the retained snapshot dates. Counts holds the
// deduplicated totals recorded for each date that is still on disk.
type RostersMeta struct {
	Dates         []string                 `json:"dates"`
	Counts        map[string]roster.Counts `json:"counts,omitempty"`
	LastRefreshed time.Time                `json:"lastRefreshed"`
	Source        string                   `json:"source,omitempty"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:   manifestVersion,
		Retention: Retention{RosterDays: retentionDays},
		Rosters:   RostersMeta{Dates: []string{}},
	}
}

// readManifest returns the manifest at path, or a fresh one alongside the
// error when the file is missing or unreadable.
func readManifest(path string, retentionDays int) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return defaultManifest(retentionDays), err
	}
	if m.Rosters.Dates == nil {
		m.Rosters.Dates = []string{}
	}
	m.Version = manifestVersion
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}

// retain keeps only the dates listed and drops counts for anything pruned.
func (r *RostersMeta) retain(dates []string) {
	r.Dates = dates
	if len(r.Counts) == 0 {
		return
	}
	kept := make(map[string]roster.Counts, len(dates))
	for _, d := range dates {
		if c, ok := r.Counts[d]; ok {
			kept[d] = c
		}
	}
	r.Counts = kept
}
