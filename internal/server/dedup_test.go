package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/dedup"
)

func TestBuildDeduperAppliesConfig(t *testing.T) {
	d := buildDeduper(config.DedupConfig{MatchThreshold: 0.9, Strategy: "connected"}, nil)
	got := d.Matcher().Config()
	if got.MatchThreshold != 0.9 || got.Strategy != dedup.StrategyConnected {
		t.Fatalf("unexpected config %+v", got)
	}
	if got.TokenThreshold != dedup.DefaultConfig().TokenThreshold {
		t.Fatalf("expected default token threshold, got %v", got.TokenThreshold)
	}
}

func TestBuildDeduperMergesVariationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variations.yaml")
	if err := os.WriteFile(path, []byte("variations:\n  - [zed, zedediah]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d := buildDeduper(config.DedupConfig{VariationsFile: path}, nil)

	got := d.Dedupe([]string{"Doe, Zed", "Doe, Zedediah", "Doe, Jon", "Doe, John"})
	if diff := cmp.Diff([]string{"Doe, Zedediah", "Doe, John"}, got); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestBuildDeduperIgnoresMissingVariationsFile(t *testing.T) {
	d := buildDeduper(config.DedupConfig{VariationsFile: filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	if d == nil {
		t.Fatalf("expected deduper despite missing file")
	}
}
