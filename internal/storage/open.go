package storage

import (
	"context"
	"fmt"

	"github.com/runnerr0/studylog/internal/config"
)

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*DiskvStore)(nil)
)

// Open returns the Store selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, opts Options) (Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite, "":
		path, err := cfg.SQLitePath()
		if err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, path, cfg.Storage.SQLiteJournalMode, opts)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.PostgresDSN(), opts)
	case config.DriverDiskv:
		path, err := cfg.DiskvPath()
		if err != nil {
			return nil, err
		}
		return OpenDiskv(path, opts)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
