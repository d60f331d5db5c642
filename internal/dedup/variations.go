package dedup

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultVariationGroups returns the built-in nickname and typo equivalences
// observed in uploaded game files. Each inner slice is one group of
// interchangeable tokens.
func DefaultVariationGroups() [][]string {
	return [][]string{
		{"john", "johnny", "jon", "jonny"},
		{"josh", "joshua"},
		{"ken", "kenan", "kenneth"},
		{"connor", "conner"},
		{"tanner", "tanar"},
		{"evan", "even"},
		{"dawson", "dawsonl"},
		{"william", "williams"},
	}
}

// VariationTable maps a normalized token to the tokens considered
// interchangeable with it. It is immutable once built and safe for
// concurrent use.
type VariationTable struct {
	equivalents map[string][]string
}

// NewVariationTable builds a table from groups of equivalent tokens. Tokens
// are normalized; groups that share a token are merged, so every relation in
// the table is symmetric.
func NewVariationTable(groups ...[][]string) *VariationTable {
	index := make(map[string]int)
	var tokens []string
	var pairs [][2]int

	for _, set := range groups {
		for _, group := range set {
			first := -1
			for _, raw := range group {
				tok := Normalize(raw)
				if tok == "" || strings.Contains(tok, " ") {
					continue
				}
				id, ok := index[tok]
				if !ok {
					id = len(tokens)
					index[tok] = id
					tokens = append(tokens, tok)
				}
				if first < 0 {
					first = id
					continue
				}
				pairs = append(pairs, [2]int{first, id})
			}
		}
	}

	ds := newDisjointSet(len(tokens))
	for _, p := range pairs {
		ds.union(p[0], p[1])
	}
	members := make(map[int][]string)
	for id, tok := range tokens {
		root := ds.find(id)
		members[root] = append(members[root], tok)
	}

	equivalents := make(map[string][]string, len(tokens))
	for id, tok := range tokens {
		group := members[ds.find(id)]
		if len(group) < 2 {
			continue
		}
		others := make([]string, 0, len(group)-1)
		for _, other := range group {
			if other != tok {
				others = append(others, other)
			}
		}
		sort.Strings(others)
		equivalents[tok] = others
	}
	return &VariationTable{equivalents: equivalents}
}

// DefaultVariationTable builds a table from DefaultVariationGroups.
func DefaultVariationTable() *VariationTable {
	return NewVariationTable(DefaultVariationGroups())
}

// TokenVariations returns the token followed by its known equivalents.
func (t *VariationTable) TokenVariations(token string) []string {
	out := []string{token}
	if t == nil {
		return out
	}
	return append(out, t.equivalents[token]...)
}

// Equivalent reports whether two tokens are listed as interchangeable.
func (t *VariationTable) Equivalent(a, b string) bool {
	if a == b {
		return true
	}
	if t == nil {
		return false
	}
	for _, v := range t.equivalents[a] {
		if v == b {
			return true
		}
	}
	return false
}

// Len returns the number of tokens that have at least one equivalent.
func (t *VariationTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.equivalents)
}

// Expand returns the normalized name followed by every variant produced by
// substituting one token position at a time with its equivalents. Only one
// position is varied per candidate.
func (t *VariationTable) Expand(normalized string) []string {
	out := []string{normalized}
	if t == nil || normalized == "" {
		return out
	}
	parts := Tokens(normalized)
	for i, part := range parts {
		alts := t.equivalents[part]
		if len(alts) == 0 {
			continue
		}
		variant := make([]string, len(parts))
		copy(variant, parts)
		for _, alt := range alts {
			variant[i] = alt
			out = append(out, strings.Join(variant, " "))
		}
	}
	return out
}

type variationFile struct {
	Variations [][]string `yaml:"variations"`
}

// LoadVariationFile reads additional variation groups from a YAML document of
// the form:
//
//	variations:
//	  - [mike, michael]
//	  - [alex, alexander, alejandro]
func LoadVariationFile(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variations file: %w", err)
	}
	var doc variationFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse variations file %s: %w", path, err)
	}
	return doc.Variations, nil
}
