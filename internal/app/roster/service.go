package roster

import (
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/dedup"
	domainroster "github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/metrics"
)

const (
	// DefaultCacheSize bounds how many distinct name lists keep their clusters.
	DefaultCacheSize = 128
	// AdHocCategory labels metrics for lists that are not part of the roster.
	AdHocCategory = "adhoc"
)

// Store defines the contract for persisting and retrieving the roster.
type Store interface {
	Roster() (domainroster.Roster, domainroster.View, bool)
	SetRoster(raw domainroster.Roster, view domainroster.View)
}

// Service derives deduplicated roster views and answers ad-hoc dedupe and
// name resolution requests.
type Service struct {
	store   Store
	deduper *dedup.Deduper
	cache   *lru.Cache[uint64, []dedup.Cluster]
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics records dedupe runs and cache hits.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source used for RefreshedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCacheSize bounds the cluster memo. Values below one fall back to
// DefaultCacheSize.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size < 1 {
			size = DefaultCacheSize
		}
		s.cache, _ = lru.New[uint64, []dedup.Cluster](size)
	}
}

// NewService constructs a Service with the provided Store and Deduper.
func NewService(store Store, deduper *dedup.Deduper, opts ...Option) *Service {
	s := &Service{
		store:   store,
		deduper: deduper,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		WithCacheSize(DefaultCacheSize)(s)
	}
	return s
}

// Deduper returns the underlying clustering engine.
func (s *Service) Deduper() *dedup.Deduper {
	return s.deduper
}

// Clusters groups names, reusing the result of an earlier call with the same
// ordered list. The returned slice is shared and must not be modified.
func (s *Service) Clusters(category string, names []string) []dedup.Cluster {
	key := namesKey(names)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordDedupeCacheHit(category)
		return cached
	}

	start := time.Now()
	clusters := s.deduper.Clusters(names)
	elapsed := time.Since(start)
	s.cache.Add(key, clusters)

	s.metrics.RecordDedupe(category, len(names), len(clusters), elapsed)
	logging.Debug(s.logger, "clustered names",
		logging.FieldCategory, category,
		logging.FieldCount, len(names),
		logging.FieldMerged, len(names)-len(clusters),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return clusters
}

// Dedupe returns one representative per cluster for an arbitrary list.
func (s *Service) Dedupe(names []string) []string {
	clusters := s.Clusters(AdHocCategory, names)
	out := make([]string, len(clusters))
	for i, c := range clusters {
		out[i] = c.Representative
	}
	return out
}

// BuildView deduplicates every category of raw without storing the result.
func (s *Service) BuildView(raw domainroster.Roster) domainroster.View {
	view := domainroster.View{RefreshedAt: s.now().UTC()}
	for _, c := range domainroster.Categories() {
		clusters := s.Clusters(string(c), raw.Names(c))
		reps := make([]string, len(clusters))
		for i, cl := range clusters {
			reps[i] = cl.Representative
		}
		entries := domainroster.BuildEntries(raw, reps, c)
		switch c {
		case domainroster.CategoryPitchers:
			view.Pitchers = entries
			view.Counts.Pitchers = len(entries)
		case domainroster.CategoryBatters:
			view.Batters = entries
			view.Counts.Batters = len(entries)
		default:
			view.AllPlayers = entries
			view.Counts.All = len(entries)
		}
	}
	return view
}

// ReplaceRoster swaps the stored roster with raw and returns its view.
func (s *Service) ReplaceRoster(raw domainroster.Roster) domainroster.View {
	view := s.BuildView(raw)
	s.store.SetRoster(raw, view)
	logging.Info(s.logger, "roster replaced",
		logging.FieldCount, view.Counts.All,
		"pitchers", view.Counts.Pitchers,
		"batters", view.Counts.Batters,
	)
	return view
}

// Restore loads a previously built view without re-clustering.
func (s *Service) Restore(raw domainroster.Roster, view domainroster.View) {
	s.store.SetRoster(raw, view)
}

// View returns the current deduplicated roster.
func (s *Service) View() (domainroster.View, bool) {
	_, view, ok := s.store.Roster()
	return view, ok
}

// Raw returns the current raw roster.
func (s *Service) Raw() (domainroster.Roster, bool) {
	raw, _, ok := s.store.Roster()
	return raw, ok
}

// Entries returns the deduplicated entries for one category.
func (s *Service) Entries(c domainroster.Category) ([]domainroster.PlayerEntry, bool) {
	view, ok := s.View()
	if !ok {
		return nil, false
	}
	return view.Entries(c), true
}

// CategoryClusters returns the clusters behind one category of the stored roster.
func (s *Service) CategoryClusters(c domainroster.Category) ([]dedup.Cluster, bool) {
	raw, ok := s.Raw()
	if !ok {
		return nil, false
	}
	return s.Clusters(string(c), raw.Names(c)), true
}

// Resolve maps any spelling of a player to the representative of the cluster
// it belongs to. An exact member match wins; otherwise the best scoring
// member above the match threshold decides.
func (s *Service) Resolve(name string) (domainroster.PlayerEntry, bool) {
	raw, ok := s.Raw()
	if !ok {
		return domainroster.PlayerEntry{}, false
	}
	names := raw.AllPlayers
	if len(names) == 0 {
		names = append(append([]string{}, raw.Pitchers...), raw.Batters...)
	}
	clusters := s.Clusters(string(domainroster.CategoryAll), names)

	matcher := s.deduper.Matcher()
	threshold := matcher.Config().MatchThreshold
	best := -1
	bestScore := 0.0
	for i, c := range clusters {
		for _, member := range c.Members {
			if member == name {
				return entryFor(raw, c.Representative), true
			}
			if score := matcher.Score(name, member); score > threshold && score > bestScore {
				best, bestScore = i, score
			}
		}
	}
	if best < 0 {
		return domainroster.PlayerEntry{}, false
	}
	return entryFor(raw, clusters[best].Representative), true
}

func entryFor(raw domainroster.Roster, name string) domainroster.PlayerEntry {
	role := domainroster.RoleFor(raw, name, domainroster.CategoryAll)
	return domainroster.PlayerEntry{
		Name:        name,
		Role:        role,
		ProfilePath: domainroster.ProfilePath(name, role),
	}
}

// namesKey hashes the ordered list; clustering depends on input order.
func namesKey(names []string) uint64 {
	d := xxhash.New()
	for _, n := range names {
		_, _ = d.WriteString(n)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
