package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "roster-dedup-service"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envErr := config.LoadEnvFile(".env")
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: serviceName,
		Version: appVersion,
	})
	if envErr != nil {
		logging.Warn(logger, "failed to read .env file", logging.FieldError, envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
