package snapshots

import (
	"os"
	"path/filepath"
)

const (
	manifestFile = "manifest.json"
	rostersDir   = "rosters"
	snapshotExt  = ".json"
)

// RosterSnapshotPath builds the path to a roster snapshot for a given date.
func RosterSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, rostersDir, date+snapshotExt)
}

// ManifestPath returns the manifest location under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}

// writeAtomic replaces path with data through a sibling temp file so readers
// never observe a partial write.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
