package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type dedupeStats struct {
	runs         int
	cacheHits    int
	inputNames   int
	outputNames  int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// dedupe runs, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*providerStats
	dedupe map[string]*dedupeStats
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:  make(map[string]*providerStats),
		dedupe: make(map[string]*dedupeStats),
		otel:   otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordDedupe tracks one clustering run over a category's names.
func (r *Recorder) RecordDedupe(category string, inputNames, outputNames int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureDedupe(category)
	stats.runs++
	stats.inputNames += inputNames
	stats.outputNames += outputNames
	stats.lastDuration = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDedupe(category, inputNames, outputNames, duration)
	}
}

// RecordDedupeCacheHit tracks a clustering result served from the memo cache.
func (r *Recorder) RecordDedupeCacheHit(category string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureDedupe(category).cacheHits++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDedupeCacheHit(category)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// DedupeSnapshot is a copy of the dedupe stats for one category.
type DedupeSnapshot struct {
	Runs         int
	CacheHits    int
	InputNames   int
	OutputNames  int
	LastDuration time.Duration
}

// MergedNames returns how many input names were folded into another cluster.
func (s DedupeSnapshot) MergedNames() int {
	return s.InputNames - s.OutputNames
}

func (r *Recorder) Dedupe(category string) DedupeSnapshot {
	if r == nil {
		return DedupeSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.dedupe[category]
	if !ok {
		return DedupeSnapshot{}
	}
	return DedupeSnapshot{
		Runs:         stats.runs,
		CacheHits:    stats.cacheHits,
		InputNames:   stats.inputNames,
		OutputNames:  stats.outputNames,
		LastDuration: stats.lastDuration,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats and ensureDedupe expect r.mu to be held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) ensureDedupe(category string) *dedupeStats {
	stats, ok := r.dedupe[category]
	if !ok {
		stats = &dedupeStats{}
		r.dedupe[category] = stats
	}
	return stats
}
