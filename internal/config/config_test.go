package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval %s, got %s", defaultPollInterval, cfg.PollInterval)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.Backend.BaseURL != defaultBackendBaseURL || cfg.Backend.APIToken != "" {
		t.Fatalf("unexpected backend defaults %+v", cfg.Backend)
	}
	if cfg.Backend.MaxAttempts != defaultBackendMaxAttempts || cfg.Backend.RateInterval != defaultBackendRateInterval {
		t.Fatalf("unexpected backend retry defaults %+v", cfg.Backend)
	}
	if cfg.Dedup.Strategy != defaultDedupStrategy || cfg.Dedup.CacheSize != defaultDedupCacheSize {
		t.Fatalf("unexpected dedup defaults %+v", cfg.Dedup)
	}
	if cfg.Dedup.MatchThreshold != 0 || cfg.Dedup.TokenThreshold != 0 || cfg.Dedup.VariationScore != 0 {
		t.Fatalf("expected zero thresholds to defer to library defaults, got %+v", cfg.Dedup)
	}
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Folder != defaultSnapshotDir || cfg.Snapshots.Timezone != "UTC" {
		t.Fatalf("unexpected snapshot defaults %+v", cfg.Snapshots)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envPollInterval, "45s")
	t.Setenv(envProvider, "backend")
	t.Setenv(envAdminToken, "admin")
	t.Setenv(envBackendBaseURL, "http://backend.internal")
	t.Setenv(envBackendAPIToken, "secret-token")
	t.Setenv(envBackendMaxAttempts, "5")
	t.Setenv(envDedupMatchThreshold, "0.8")
	t.Setenv(envDedupStrategy, "connected")
	t.Setenv(envDedupVariationsFile, "variations.yaml")
	t.Setenv(envSnapshotRetention, "3")
	t.Setenv(envSnapshotTimezone, "America/Chicago")
	t.Setenv(envLogFormat, "text")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Fatalf("expected poll interval 45s, got %s", cfg.PollInterval)
	}
	if cfg.Provider != "backend" || cfg.AdminToken != "admin" {
		t.Fatalf("unexpected provider/admin %s %s", cfg.Provider, cfg.AdminToken)
	}
	if cfg.Backend.BaseURL != "http://backend.internal" || cfg.Backend.APIToken != "secret-token" || cfg.Backend.MaxAttempts != 5 {
		t.Fatalf("unexpected backend overrides %+v", cfg.Backend)
	}
	if cfg.Dedup.MatchThreshold != 0.8 || cfg.Dedup.Strategy != "connected" || cfg.Dedup.VariationsFile != "variations.yaml" {
		t.Fatalf("unexpected dedup overrides %+v", cfg.Dedup)
	}
	if cfg.Snapshots.RetentionDays != 3 || cfg.Snapshots.Timezone != "America/Chicago" {
		t.Fatalf("unexpected snapshot overrides %+v", cfg.Snapshots)
	}
	if cfg.Logging.Format != "text" {
		t.Fatalf("expected text log format, got %s", cfg.Logging.Format)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envPollInterval, "not-a-duration")

	cfg := Load()

	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval on invalid value, got %s", cfg.PollInterval)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envPollInterval, "0s")

	cfg := Load()

	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval on non-positive value, got %s", cfg.PollInterval)
	}
}

func TestMetricsAddr(t *testing.T) {
	for _, port := range []string{"9090", ":9090"} {
		if got := (MetricsConfig{Port: port}).Addr(); got != ":9090" {
			t.Fatalf("Addr() for %q = %q, want :9090", port, got)
		}
	}
}
