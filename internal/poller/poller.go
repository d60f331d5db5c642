package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/metrics"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/providers"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/timeutil"
)

const (
	defaultInterval = 5 * time.Minute
	// maxConsecutiveFailures is how many failed cycles in a row flip readiness.
	maxConsecutiveFailures = 3
)

// SnapshotWriter persists roster snapshots to disk.
type SnapshotWriter interface {
	WriteRosterSnapshot(date string, snapshot roster.Snapshot) error
}

// RosterUpdater receives each freshly fetched roster and returns its
// deduplicated view.
type RosterUpdater interface {
	ReplaceRoster(raw roster.Roster) roster.View
}

// Poller fetches the roster on an interval, hands it to the updater and writes
// the day's snapshot to disk.
type Poller struct {
	provider providers.RosterProvider
	updater  RosterUpdater
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time
	loc      *time.Location
	source   string

	refreshMu sync.Mutex

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxConsecutiveFailures
}

// Option customizes a Poller.
type Option func(*Poller)

// WithLocation sets the time zone used to date snapshots.
func WithLocation(loc *time.Location) Option {
	return func(p *Poller) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithSource names the provider recorded in snapshots.
func WithSource(name string) Option {
	return func(p *Poller) { p.source = name }
}

// New constructs a Poller with sane defaults.
func New(provider providers.RosterProvider, updater RosterUpdater, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	p := &Poller{
		provider: provider,
		updater:  updater,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		loc:      time.UTC,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Refresh runs one fetch cycle immediately and returns the new view.
// Concurrent refreshes are serialized.
func (p *Poller) Refresh(ctx context.Context) (roster.View, error) {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)
	raw, err := p.provider.FetchRoster(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return roster.View{}, err
	}

	var view roster.View
	if p.updater != nil {
		view = p.updater.ReplaceRoster(raw)
	}

	date := timeutil.FormatDate(p.now().In(p.loc))
	if p.writer != nil {
		snap := roster.Snapshot{Date: date, Raw: raw, View: view, Source: p.source}
		if writeErr := p.writer.WriteRosterSnapshot(date, snap); writeErr != nil {
			logging.Error(p.logger, "poller snapshot write failed", writeErr, logging.FieldDate, date)
		}
	}
	p.recordSuccess(start)
	logging.Info(p.logger, "poller refreshed roster",
		logging.FieldDate, date,
		logging.FieldCount, len(raw.AllPlayers),
		"deduplicated", view.Counts.All,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return view, nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	_, _ = p.Refresh(ctx)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.RosterProvider {
	return p.provider
}
