package config

import "strings"

// MetricsConfig controls the Prometheus scrape endpoint and optional OTLP push.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// Addr is the listen address of the scrape endpoint. A leading colon in Port
// is tolerated.
func (m MetricsConfig) Addr() string {
	return ":" + strings.TrimPrefix(m.Port, ":")
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}
