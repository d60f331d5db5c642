package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envAdminToken   = "ADMIN_TOKEN"

	envBackendBaseURL      = "BACKEND_BASE_URL"
	envBackendAPIToken     = "BACKEND_API_TOKEN"
	envBackendRateInterval = "BACKEND_RATE_INTERVAL"
	envBackendMaxAttempts  = "BACKEND_MAX_ATTEMPTS"
	envBackendRetryDelay   = "BACKEND_RETRY_DELAY"

	envDedupMatchThreshold = "DEDUP_MATCH_THRESHOLD"
	envDedupTokenThreshold = "DEDUP_TOKEN_THRESHOLD"
	envDedupVariationScore = "DEDUP_VARIATION_SCORE"
	envDedupStrategy       = "DEDUP_STRATEGY"
	envDedupVariationsFile = "DEDUP_VARIATIONS_FILE"
	envDedupCacheSize      = "DEDUP_CACHE_SIZE"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envSnapshotEnabled   = "SNAPSHOT_ENABLED"
	envSnapshotDir       = "SNAPSHOT_DIR"
	envSnapshotRetention = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotTimezone  = "SNAPSHOT_TIMEZONE"

	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"

	defaultPort = "4000"
	// The roster changes a few times a day at most.
	defaultPollInterval = 5 * Duration(time.Minute)
	defaultProvider     = "fixture"

	defaultBackendBaseURL      = "http://localhost:8000"
	defaultBackendRateInterval = 10 * Duration(time.Second)
	defaultBackendMaxAttempts  = 3
	defaultBackendRetryDelay   = 500 * Duration(time.Millisecond)

	defaultDedupStrategy  = "seed"
	defaultDedupCacheSize = 128

	defaultMetricsPort = "9090"
	defaultServiceName = "roster-dedup-service"

	defaultSnapshotEnabled   = true
	defaultSnapshotDir       = "data/snapshots"
	defaultSnapshotRetention = 14
	defaultSnapshotTimezone  = "UTC"

	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)
