package config

// LogConfig selects the log level and handler format (json or text).
type LogConfig struct {
	Level  string
	Format string
}

func loadLogging() LogConfig {
	return LogConfig{
		Level:  envOrDefault(envLogLevel, defaultLogLevel),
		Format: envOrDefault(envLogFormat, defaultLogFormat),
	}
}
