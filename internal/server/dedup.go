package server

import (
	"log/slog"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/dedup"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
)

// buildDeduper merges the optional variations file into the default table.
// A broken file is logged and skipped so the service still starts.
func buildDeduper(cfg config.DedupConfig, logger *slog.Logger) *dedup.Deduper {
	groups := [][][]string{dedup.DefaultVariationGroups()}
	if cfg.VariationsFile != "" {
		extra, err := dedup.LoadVariationFile(cfg.VariationsFile)
		if err != nil {
			logging.Error(logger, "variations file ignored", err, slog.String("file", cfg.VariationsFile))
		} else {
			groups = append(groups, extra)
		}
	}
	table := dedup.NewVariationTable(groups...)

	d := dedup.New(table, dedup.Config{
		TokenThreshold: cfg.TokenThreshold,
		MatchThreshold: cfg.MatchThreshold,
		VariationScore: cfg.VariationScore,
		Strategy:       dedup.ParseStrategy(cfg.Strategy),
	})
	effective := d.Matcher().Config()
	logging.Info(logger, "deduper configured",
		slog.String(logging.FieldStrategy, string(effective.Strategy)),
		slog.Float64("match_threshold", effective.MatchThreshold),
		slog.Float64("token_threshold", effective.TokenThreshold),
		slog.Int("variation_tokens", table.Len()),
	)
	return d
}
