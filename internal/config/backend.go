package config

// BackendConfig controls how we talk to the analytics backend.
type BackendConfig struct {
	BaseURL      string
	APIToken     string
	RateInterval Duration
	MaxAttempts  int
	RetryDelay   Duration
}

func loadBackend() BackendConfig {
	return BackendConfig{
		BaseURL:      envOrDefault(envBackendBaseURL, defaultBackendBaseURL),
		APIToken:     envOrDefault(envBackendAPIToken, ""),
		RateInterval: durationEnvOrDefault(envBackendRateInterval, defaultBackendRateInterval),
		MaxAttempts:  intEnvOrDefault(envBackendMaxAttempts, defaultBackendMaxAttempts),
		RetryDelay:   durationEnvOrDefault(envBackendRetryDelay, defaultBackendRetryDelay),
	}
}
