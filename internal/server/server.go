package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	approster "github.com/carson3m/TrackmanAnalyticsProgram/internal/app/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	httpserver "github.com/carson3m/TrackmanAnalyticsProgram/internal/http"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/http/handlers"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/metrics"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/poller"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/snapshots"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/store"
)

var metricsSetup = metrics.Setup

// Poller is the part of the roster poller the server drives.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	rosterService *approster.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.RosterProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.RosterProvider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var providerName string
	if provider == nil {
		provider, providerName = newProviderFactory(logger, recorder).build(cfg)
	} else {
		providerName = normalizeProviderName(cfg.Provider, provider)
		provider = providers.NewRetryingProvider(provider, logger, recorder, providerName, cfg.Backend.MaxAttempts, cfg.Backend.RetryDelay)
	}

	svc := buildRosterService(cfg, logger, recorder)
	snaps := buildSnapshots(cfg, logger)
	restoreLatest(svc, snaps.store, logger)

	var writer poller.SnapshotWriter
	if snaps.writer != nil {
		writer = snaps.writer
	}
	plr := poller.New(provider, svc, writer, logger, recorder, cfg.PollInterval,
		poller.WithLocation(snaps.loc),
		poller.WithSource(providerName),
	)

	var snapStore snapshots.Store
	if snaps.store != nil {
		snapStore = snaps.store
	}
	httpSrv := buildHTTPServer(cfg, svc, snapStore, plr, plr, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		rosterService: svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *approster.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:           cfg,
		logger:        logger,
		rosterService: svc,
		httpServer:    httpSrv,
		poller:        plr,
	}
}

func buildRosterService(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *approster.Service {
	return approster.NewService(store.NewMemoryStore(), buildDeduper(cfg.Dedup, logger),
		approster.WithMetrics(recorder),
		approster.WithLogger(logger),
		approster.WithCacheSize(cfg.Dedup.CacheSize),
	)
}

func buildHTTPServer(cfg config.Config, svc *approster.Service, snaps snapshots.Store, plr Poller, refresher handlers.Refresher, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(svc, snaps, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresher, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, logger, recorder)

	return newNetHTTPServer(":"+cfg.Port, router)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(cfg.Metrics.Addr(), handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// RosterService exposes the roster service (useful for tests).
func (s *Server) RosterService() *approster.Service {
	return s.rosterService
}
