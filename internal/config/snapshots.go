package config

// SnapshotConfig controls where refreshed rosters are persisted.
type SnapshotConfig struct {
	Enabled       bool
	Folder        string
	RetentionDays int
	// Timezone names the IANA zone used to date snapshots.
	Timezone string
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:       boolEnvOrDefault(envSnapshotEnabled, defaultSnapshotEnabled),
		Folder:        envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotRetention, defaultSnapshotRetention),
		Timezone:      envOrDefault(envSnapshotTimezone, defaultSnapshotTimezone),
	}
}
