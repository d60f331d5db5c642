package metrics

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// otelInstruments mirrors every Recorder call into OpenTelemetry. A nil
// *otelInstruments records nothing.
type otelInstruments struct {
	ctx context.Context

	httpRequests  metric.Int64Counter
	httpLatencyMs metric.Float64Histogram

	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram

	pollerCycles    metric.Int64Counter
	pollerErrors    metric.Int64Counter
	pollerLatencyMs metric.Float64Histogram

	dedupeRuns      metric.Int64Counter
	dedupeMerged    metric.Int64Counter
	dedupeLatencyMs metric.Float64Histogram
	dedupeCacheHits metric.Int64Counter
}

// instrumentBuilder collects creation errors so instruments can be declared
// in one block and checked once.
type instrumentBuilder struct {
	meter metric.Meter
	errs  []error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return c
}

func (b *instrumentBuilder) histogram(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return h
}

func (b *instrumentBuilder) err() error {
	return errors.Join(b.errs...)
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(DefaultServiceName)}
	inst := &otelInstruments{
		ctx: context.Background(),

		httpRequests:  b.counter("http_requests_total", "HTTP requests served"),
		httpLatencyMs: b.histogram("http_request_duration_ms", "HTTP request latency in milliseconds"),

		providerAttempts:  b.counter("provider_attempts_total", "Roster fetch attempts"),
		providerErrors:    b.counter("provider_errors_total", "Failed roster fetch attempts"),
		providerLatencyMs: b.histogram("provider_duration_ms", "Roster fetch latency in milliseconds"),
		rateLimitHits:     b.counter("provider_rate_limit_hits_total", "Upstream 429 responses"),
		retryAfterMs:      b.histogram("provider_retry_after_ms", "Upstream Retry-After in milliseconds"),

		pollerCycles:    b.counter("poller_cycles_total", "Roster refresh cycles"),
		pollerErrors:    b.counter("poller_errors_total", "Failed roster refresh cycles"),
		pollerLatencyMs: b.histogram("poller_cycle_duration_ms", "Roster refresh latency in milliseconds"),

		dedupeRuns:      b.counter("dedupe_runs_total", "Clustering runs by category"),
		dedupeMerged:    b.counter("dedupe_merged_names_total", "Names folded into another cluster member"),
		dedupeLatencyMs: b.histogram("dedupe_duration_ms", "Clustering latency in milliseconds"),
		dedupeCacheHits: b.counter("dedupe_cache_hits_total", "Clustering results served from the memo"),
	}
	if err := b.err(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (o *otelInstruments) add(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) observeMs(hist metric.Float64Histogram, d time.Duration, attrs ...attribute.KeyValue) {
	hist.Record(o.ctx, float64(d.Microseconds())/1000, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.add(o.httpRequests, 1, attrs...)
	o.observeMs(o.httpLatencyMs, duration, attrs...)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attr := attribute.String(AttrProvider, provider)
	o.add(o.providerAttempts, 1, attr)
	o.observeMs(o.providerLatencyMs, duration, attr)
	if err != nil {
		o.add(o.providerErrors, 1, attr)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attr := attribute.String(AttrProvider, provider)
	o.add(o.rateLimitHits, 1, attr)
	if retryAfter > 0 {
		o.observeMs(o.retryAfterMs, retryAfter, attr)
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.add(o.pollerCycles, 1)
	o.observeMs(o.pollerLatencyMs, duration)
	if err != nil {
		o.add(o.pollerErrors, 1)
	}
}

func (o *otelInstruments) recordDedupe(category string, inputNames, outputNames int, duration time.Duration) {
	if o == nil {
		return
	}
	attr := attribute.String(AttrCategory, category)
	o.add(o.dedupeRuns, 1, attr)
	o.observeMs(o.dedupeLatencyMs, duration, attr)
	if merged := inputNames - outputNames; merged > 0 {
		o.add(o.dedupeMerged, int64(merged), attr)
	}
}

func (o *otelInstruments) recordDedupeCacheHit(category string) {
	if o == nil {
		return
	}
	o.add(o.dedupeCacheHits, 1, attribute.String(AttrCategory, category))
}
