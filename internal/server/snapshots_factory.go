package server

import (
	"errors"
	"log/slog"
	"time"

	approster "github.com/carson3m/TrackmanAnalyticsProgram/internal/app/roster"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/config"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/logging"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/snapshots"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/timeutil"
)

type snapshotComponents struct {
	store  *snapshots.FSStore
	writer *snapshots.Writer
	loc    *time.Location
}

func buildSnapshots(cfg config.Config, logger *slog.Logger) snapshotComponents {
	loc, err := timeutil.LoadLocation(cfg.Snapshots.Timezone)
	if err != nil {
		logging.Warn(logger, "unknown snapshot timezone, using UTC", slog.String("tz", cfg.Snapshots.Timezone))
	}
	if !cfg.Snapshots.Enabled {
		return snapshotComponents{loc: loc}
	}
	basePath := cfg.Snapshots.Folder
	return snapshotComponents{
		store:  snapshots.NewFSStore(basePath),
		writer: snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays),
		loc:    loc,
	}
}

// restoreLatest seeds the service from the newest snapshot so the API can
// answer before the first upstream fetch completes.
func restoreLatest(svc *approster.Service, store *snapshots.FSStore, logger *slog.Logger) bool {
	if store == nil {
		return false
	}
	snap, err := store.Latest()
	if err != nil {
		if !errors.Is(err, snapshots.ErrNotFound) {
			logging.Warn(logger, "snapshot restore failed", slog.Any(logging.FieldError, err))
		}
		return false
	}
	if snap.Raw.Empty() {
		return false
	}
	svc.Restore(snap.Raw, snap.View)
	logging.Info(logger, "restored roster snapshot",
		slog.String(logging.FieldDate, snap.Date),
		slog.Int(logging.FieldCount, snap.View.Counts.All),
	)
	return true
}
