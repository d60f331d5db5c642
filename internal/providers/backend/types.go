package backend

import (
	"encoding/json"
	"strings"
)

// rosterResponse is the backend payload. Lists may be null when a category
// has no uploads yet.
type rosterResponse struct {
	Pitchers   []string `json:"pitchers"`
	Batters    []string `json:"batters"`
	AllPlayers []string `json:"all_players"`
}

// errorResponse is the backend error envelope. Detail is usually a string but
// validation failures send a list of objects.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func (e errorResponse) message() string {
	if len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(e.Detail))
}
