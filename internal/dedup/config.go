package dedup

import "strings"

const (
	// DefaultTokenThreshold is the per-token similarity a position must exceed
	// to count as matched. 0.7 lets a single typo through in names of four or
	// more letters while rejecting unrelated short names.
	DefaultTokenThreshold = 0.7
	// DefaultMatchThreshold is the name score a candidate must exceed to join a
	// cluster. With two-token names it requires every position to match.
	DefaultMatchThreshold = 0.75
	// DefaultVariationScore is returned when two names are related through the
	// variation table. Known aliases outrank edit distance.
	DefaultVariationScore = 0.95
)

// Strategy selects how names are grouped into clusters.
type Strategy string

const (
	// StrategySeed compares each remaining name only with the cluster seed in a
	// single forward pass. A chain A~B, B~C with A!~C may stay split.
	StrategySeed Strategy = "seed"
	// StrategyConnected links every pair above the threshold and clusters by
	// connected component.
	StrategyConnected Strategy = "connected"
)

// ParseStrategy maps a configuration value to a Strategy, falling back to
// StrategySeed for empty or unknown input.
func ParseStrategy(raw string) Strategy {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case StrategyConnected:
		return StrategyConnected
	default:
		return StrategySeed
	}
}

// Config tunes the matcher and clustering. Zero values fall back to defaults.
type Config struct {
	TokenThreshold float64
	MatchThreshold float64
	VariationScore float64
	Strategy       Strategy
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		TokenThreshold: DefaultTokenThreshold,
		MatchThreshold: DefaultMatchThreshold,
		VariationScore: DefaultVariationScore,
		Strategy:       StrategySeed,
	}
}

func (c Config) withDefaults() Config {
	if c.TokenThreshold <= 0 || c.TokenThreshold > 1 {
		c.TokenThreshold = DefaultTokenThreshold
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		c.MatchThreshold = DefaultMatchThreshold
	}
	if c.VariationScore <= 0 || c.VariationScore > 1 {
		c.VariationScore = DefaultVariationScore
	}
	if c.Strategy != StrategyConnected {
		c.Strategy = StrategySeed
	}
	return c
}
