package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	AdminToken   string
	Backend      BackendConfig
	Dedup        DedupConfig
	Metrics      MetricsConfig
	Snapshots    SnapshotConfig
	Logging      LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		AdminToken:   envOrDefault(envAdminToken, ""),
		Backend:      loadBackend(),
		Dedup:        loadDedup(),
		Metrics:      loadMetrics(),
		Snapshots:    loadSnapshots(),
		Logging:      loadLogging(),
	}
}
