package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/snapshots"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/testutil"
)

func TestBuildSnapshotsRespectsConfig(t *testing.T) {
	cfg := config.Config{
		Snapshots: config.SnapshotConfig{
			Enabled:       true,
			RetentionDays: 1,
			Folder:        t.TempDir(),
			Timezone:      "America/New_York",
		},
	}
	components := buildSnapshots(cfg, nil)
	if components.store == nil || components.writer == nil {
		t.Fatalf("expected snapshot components to be initialized")
	}
	if components.loc.String() != "America/New_York" {
		t.Fatalf("expected configured location, got %s", components.loc)
	}
}

func TestBuildSnapshotsDisabledKeepsLocation(t *testing.T) {
	components := buildSnapshots(config.Config{
		Snapshots: config.SnapshotConfig{Enabled: false, Timezone: "Not/AZone"},
	}, nil)
	if components.store != nil || components.writer != nil {
		t.Fatalf("expected no store or writer when disabled")
	}
	if components.loc != time.UTC {
		t.Fatalf("expected UTC fallback for bad timezone, got %s", components.loc)
	}
}

func TestRestoreLatestLoadsNewestSnapshot(t *testing.T) {
	dir := t.TempDir()
	date := time.Now().UTC().Format(time.DateOnly)
	testutil.WriteSnapshot(t, snapshots.NewWriter(dir, 7), date)

	svc := testutil.NewRosterService(nil)
	if !restoreLatest(svc, snapshots.NewFSStore(dir), nil) {
		t.Fatalf("expected snapshot to be restored")
	}
	view, ok := svc.View()
	if !ok || !view.RefreshedAt.Equal(testutil.FixedRefresh) {
		t.Fatalf("expected stored view to be restored as-is, got %+v ok=%v", view, ok)
	}
}

func TestRestoreLatestSkipsMissingOrBrokenSnapshots(t *testing.T) {
	svc := testutil.NewRosterService(nil)
	if restoreLatest(svc, nil, nil) {
		t.Fatalf("expected nil store to skip restore")
	}
	if restoreLatest(svc, snapshots.NewFSStore(t.TempDir()), nil) {
		t.Fatalf("expected empty store to skip restore")
	}

	dir := t.TempDir()
	path := snapshots.RosterSnapshotPath(dir, "2024-05-01")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if restoreLatest(svc, snapshots.NewFSStore(dir), nil) {
		t.Fatalf("expected broken snapshot to skip restore")
	}
	if _, ok := svc.View(); ok {
		t.Fatalf("expected service to stay empty")
	}
}
