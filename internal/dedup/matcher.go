package dedup

// Matcher scores how likely two raw names refer to the same player.
type Matcher struct {
	cfg   Config
	table *VariationTable
}

// NewMatcher builds a Matcher. A nil table disables variation matching.
func NewMatcher(table *VariationTable, cfg Config) *Matcher {
	return &Matcher{
		cfg:   cfg.withDefaults(),
		table: table,
	}
}

// Config returns the effective configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// preparedName caches the per-name work so all-pairs scoring does not
// normalize or expand the same name repeatedly.
type preparedName struct {
	raw        string
	normalized string
	tokens     []string
	variants   map[string]struct{}
}

func (m *Matcher) prepare(raw string) preparedName {
	normalized := Normalize(raw)
	p := preparedName{
		raw:        raw,
		normalized: normalized,
		tokens:     Tokens(normalized),
	}
	expanded := m.table.Expand(normalized)
	p.variants = make(map[string]struct{}, len(expanded))
	for _, v := range expanded {
		p.variants[v] = struct{}{}
	}
	return p
}

// Score returns a similarity in [0, 1] between two raw names. It is
// symmetric: Score(a, b) == Score(b, a).
func (m *Matcher) Score(a, b string) float64 {
	return m.score(m.prepare(a), m.prepare(b))
}

func (m *Matcher) score(a, b preparedName) float64 {
	if a.raw == b.raw {
		return 1.0
	}
	// Two letterless names normalize to the same empty form and match.
	if a.normalized == b.normalized {
		return 1.0
	}
	if a.normalized == "" || b.normalized == "" {
		return 0.0
	}
	// Fix the argument order so every branch below sees the same pair.
	if a.normalized > b.normalized {
		a, b = b, a
	}
	if sharesVariant(a.variants, b.variants) {
		return m.cfg.VariationScore
	}
	return m.tokenScore(a.tokens, b.tokens)
}

func sharesVariant(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for v := range a {
		if _, ok := b[v]; ok {
			return true
		}
	}
	return false
}

// tokenScore compares tokens position by position. When the counts differ
// the shorter sequence slides over every window of the longer one and the
// best window wins.
func (m *Matcher) tokenScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	longer, shorter := a, b
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}

	best := 0.0
	for offset := 0; offset <= len(longer)-len(shorter); offset++ {
		matches := 0
		for i, tok := range shorter {
			if m.tokensMatch(longer[offset+i], tok) {
				matches++
			}
		}
		if ratio := float64(matches) / float64(len(shorter)); ratio > best {
			best = ratio
		}
	}
	return best
}

func (m *Matcher) tokensMatch(a, b string) bool {
	return a == b || StringSimilarity(a, b) > m.cfg.TokenThreshold
}
