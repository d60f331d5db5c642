package config

// DedupConfig tunes name matching. Zero thresholds mean "use the library
// default".
type DedupConfig struct {
	MatchThreshold float64
	TokenThreshold float64
	VariationScore float64
	Strategy       string
	VariationsFile string
	CacheSize      int
}

func loadDedup() DedupConfig {
	return DedupConfig{
		MatchThreshold: floatEnvOrDefault(envDedupMatchThreshold, 0),
		TokenThreshold: floatEnvOrDefault(envDedupTokenThreshold, 0),
		VariationScore: floatEnvOrDefault(envDedupVariationScore, 0),
		Strategy:       envOrDefault(envDedupStrategy, defaultDedupStrategy),
		VariationsFile: envOrDefault(envDedupVariationsFile, ""),
		CacheSize:      intEnvOrDefault(envDedupCacheSize, defaultDedupCacheSize),
	}
}
