package store

import (
	"slices"
	"sync"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
)

// MemoryStore keeps a thread-safe copy of the latest raw roster and its
// deduplicated view in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	raw    roster.Roster
	view   roster.View
	loaded bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Roster returns copies of the stored roster and view. The boolean is false
// until the first SetRoster call.
func (s *MemoryStore) Roster() (roster.Roster, roster.View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return roster.Roster{}, roster.View{}, false
	}
	return cloneRoster(s.raw), cloneView(s.view), true
}

// SetRoster replaces the stored roster and view.
func (s *MemoryStore) SetRoster(raw roster.Roster, view roster.View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = cloneRoster(raw)
	s.view = cloneView(view)
	s.loaded = true
}

func cloneRoster(r roster.Roster) roster.Roster {
	return roster.Roster{
		Pitchers:   slices.Clone(r.Pitchers),
		Batters:    slices.Clone(r.Batters),
		AllPlayers: slices.Clone(r.AllPlayers),
	}
}

func cloneView(v roster.View) roster.View {
	v.Pitchers = slices.Clone(v.Pitchers)
	v.Batters = slices.Clone(v.Batters)
	v.AllPlayers = slices.Clone(v.AllPlayers)
	return v
}
