package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/snapshots"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/teststubs"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/testutil"
)

func waitForView(t *testing.T, srv *Server) roster.View {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if view, ok := srv.RosterService().View(); ok {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for roster view")
	return roster.View{}
}

func TestServerServesHealthAndRoster(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &teststubs.StubProvider{
		Roster: testutil.SampleRoster(),
		Notify: make(chan struct{}),
	}

	cfg := config.Config{PollInterval: time.Hour}
	srv := newServerWithProvider(cfg, nil, provider)
	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for poller to fetch")
	}
	waitForView(t, srv)

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodGet, "/roster", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view roster.View
	testutil.DecodeJSON(t, rr, &view)
	if diff := cmp.Diff(roster.Counts{All: 3, Pitchers: 1, Batters: 1}, view.Counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}

	rr = testutil.ServeJSON(t, router, http.MethodPost, "/dedupe", map[string][]string{
		"names": {"Doe, Jon", "Doe, Johnny", "Smith, Amy"},
	})
	testutil.AssertStatus(t, rr, http.StatusOK)
	var deduped struct {
		Names []string `json:"names"`
	}
	testutil.DecodeJSON(t, rr, &deduped)
	if diff := cmp.Diff([]string{"Doe, Johnny", "Smith, Amy"}, deduped.Names); diff != "" {
		t.Fatalf("unexpected dedupe names (-want +got):\n%s", diff)
	}
}

func TestServerRosterUnavailableWhenProviderFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Config{
		PollInterval: time.Hour,
		Backend:      config.BackendConfig{MaxAttempts: 1, RetryDelay: time.Millisecond},
	}
	srv := newServerWithProvider(cfg, nil, testutil.ErrProvider{Err: errors.New("upstream down")})
	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	deadline := time.Now().Add(time.Second)
	for srv.poller.Status().LastError == "" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/roster", nil), http.StatusServiceUnavailable)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
}

func TestServerRestoresLatestSnapshotOnBoot(t *testing.T) {
	dir := t.TempDir()
	date := time.Now().UTC().Format(time.DateOnly)
	testutil.WriteSnapshot(t, snapshots.NewWriter(dir, 7), date)

	cfg := config.Config{
		PollInterval: time.Hour,
		Snapshots:    config.SnapshotConfig{Enabled: true, Folder: dir, RetentionDays: 7},
	}
	srv := newServerWithProvider(cfg, nil, testutil.UnavailableProvider{})

	view, ok := srv.RosterService().View()
	if !ok || view.Counts.All != 3 {
		t.Fatalf("expected restored view, got %+v ok=%v", view.Counts, ok)
	}
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/roster/snapshots", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/roster?date="+date, nil), http.StatusOK)
}

func TestServerMountsAdminOnlyWithToken(t *testing.T) {
	noAdmin := newServerWithProvider(config.Config{}, nil, testutil.UnavailableProvider{})
	testutil.AssertStatus(t, testutil.Serve(noAdmin.Handler(), http.MethodPost, "/admin/roster/refresh", nil), http.StatusNotFound)

	withAdmin := newServerWithProvider(config.Config{AdminToken: "secret"}, nil, testutil.UnavailableProvider{})
	testutil.AssertStatus(t, testutil.Serve(withAdmin.Handler(), http.MethodPost, "/admin/roster/refresh", nil), http.StatusUnauthorized)
}

func TestNewConstructsServer(t *testing.T) {
	cfg := config.Config{
		Port:     "0",
		Provider: "fixture",
		Metrics: config.MetricsConfig{
			Enabled: false,
		},
	}
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.RosterService() == nil {
		t.Fatalf("expected roster service")
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, testutil.NewRosterService(nil), httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.StubHTTPServer{Unblock: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, testutil.NewRosterService(nil), blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls())
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, testutil.NewRosterService(nil), httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 || httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected stop and shutdown once, got %d and %d", p.StopCalls, httpSrv.ShutdownCalls())
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, testutil.NewRosterService(nil), &testutil.StubHTTPServer{ListenErr: errors.New("listen failure")}, &testutil.StubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{ListenErr: http.ErrServerClosed}

	srv := newServerWithDeps(config.Config{}, nil, testutil.NewRosterService(nil), httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected poller start/stop once, got %d/%d", plr.StartCalls, plr.StopCalls)
	}
	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls())
	}
}
