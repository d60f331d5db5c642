package roster

import (
	"net/url"
	"strings"
	"time"
)

// Roster is the raw list of names reported by the analytics backend. Names may
// repeat across and within lists with inconsistent spelling.
type Roster struct {
	Pitchers   []string `json:"pitchers"`
	Batters    []string `json:"batters"`
	AllPlayers []string `json:"all_players"`
}

// Category selects one of the roster lists.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryPitchers Category = "pitchers"
	CategoryBatters  Category = "batters"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryAll, CategoryPitchers, CategoryBatters}
}

// ParseCategory maps a path or query value to a Category. Empty input means all.
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case "", CategoryAll:
		return CategoryAll, true
	case CategoryPitchers:
		return CategoryPitchers, true
	case CategoryBatters:
		return CategoryBatters, true
	default:
		return "", false
	}
}

// Names returns the raw list backing a category.
func (r Roster) Names(c Category) []string {
	switch c {
	case CategoryPitchers:
		return r.Pitchers
	case CategoryBatters:
		return r.Batters
	default:
		return r.AllPlayers
	}
}

// Empty reports whether every list is empty.
func (r Roster) Empty() bool {
	return len(r.Pitchers) == 0 && len(r.Batters) == 0 && len(r.AllPlayers) == 0
}

// Role is the player type used in profile links.
type Role string

const (
	RolePitcher Role = "pitcher"
	RoleBatter  Role = "batter"
	RoleAll     Role = "all"
)

// RoleFor classifies a display name. Membership in the raw pitcher list wins,
// then the raw batter list; otherwise the role follows the category it is
// listed under.
func RoleFor(r Roster, name string, c Category) Role {
	if contains(r.Pitchers, name) {
		return RolePitcher
	}
	if contains(r.Batters, name) {
		return RoleBatter
	}
	switch c {
	case CategoryPitchers:
		return RolePitcher
	case CategoryBatters:
		return RoleBatter
	default:
		return RoleAll
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// ProfilePath builds the presentation-layer route for a player's profile.
func ProfilePath(name string, role Role) string {
	return "/player-profile/" + url.PathEscape(name) + "/" + string(role)
}

// PlayerEntry is one deduplicated player as shown on the roster page.
type PlayerEntry struct {
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	ProfilePath string `json:"profilePath"`
}

// Counts holds deduplicated list sizes.
type Counts struct {
	All      int `json:"all"`
	Pitchers int `json:"pitchers"`
	Batters  int `json:"batters"`
}

// View is the deduplicated roster served to clients.
type View struct {
	Pitchers    []PlayerEntry `json:"pitchers"`
	Batters     []PlayerEntry `json:"batters"`
	AllPlayers  []PlayerEntry `json:"allPlayers"`
	Counts      Counts        `json:"counts"`
	RefreshedAt time.Time     `json:"refreshedAt"`
}

// Entries returns the entries for a category.
func (v View) Entries(c Category) []PlayerEntry {
	switch c {
	case CategoryPitchers:
		return v.Pitchers
	case CategoryBatters:
		return v.Batters
	default:
		return v.AllPlayers
	}
}

// Snapshot is the persisted form of a refreshed roster.
type Snapshot struct {
	Date   string `json:"date"`
	Raw    Roster `json:"raw"`
	View   View   `json:"view"`
	Source string `json:"source"`
}
