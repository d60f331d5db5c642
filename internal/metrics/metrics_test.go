package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("backend", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("backend", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("backend"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("backend"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("backend"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("backend")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if empty := rec.Snapshot("unknown"); empty != (Snapshot{}) {
		t.Fatalf("expected zero snapshot for unknown provider, got %+v", empty)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("backend", 5*time.Second)
	rec.RecordRateLimit("backend", 0)

	if got := rec.RateLimitHits("backend"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("backend"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksDedupeRuns(t *testing.T) {
	rec := NewRecorder()
	rec.RecordDedupe("pitchers", 10, 7, 2*time.Millisecond)
	rec.RecordDedupe("pitchers", 4, 4, time.Millisecond)
	rec.RecordDedupeCacheHit("pitchers")

	snap := rec.Dedupe("pitchers")
	if snap.Runs != 2 || snap.CacheHits != 1 {
		t.Fatalf("unexpected dedupe snapshot %+v", snap)
	}
	if snap.MergedNames() != 3 {
		t.Fatalf("expected 3 merged names, got %d", snap.MergedNames())
	}
	if snap.LastDuration != time.Millisecond {
		t.Fatalf("expected last duration 1ms, got %s", snap.LastDuration)
	}
	if other := rec.Dedupe("batters"); other.Runs != 0 {
		t.Fatalf("expected categories to be tracked separately, got %+v", other)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("backend", time.Millisecond, nil)
	rec.RecordRateLimit("backend", time.Second)
	rec.RecordDedupe("all", 1, 1, time.Millisecond)
	rec.RecordDedupeCacheHit("all")
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordPollerCycle(time.Millisecond, nil)

	if rec.ProviderCalls("backend") != 0 || rec.Dedupe("all").Runs != 0 {
		t.Fatalf("expected nil recorder to report zero values")
	}
}
