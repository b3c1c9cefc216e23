// Package backend opens the configured session store.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/ironlog/internal/config"
	"github.com/claude/ironlog/internal/localstore"
	"github.com/claude/ironlog/internal/session"
	"github.com/claude/ironlog/internal/storage"
)

// Open connects to the database selected by cfg.Driver. For Postgres,
// pending migrations from migrationsDir are applied first. The returned
// close func releases the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, migrationsDir string, log *slog.Logger) (session.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.DSN()
		if err := storage.RunMigrations(dsn, migrationsDir); err != nil {
			return nil, nil, err
		}
		log.Info("migrations applied")

		db, err := storage.New(ctx, dsn, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database connected", "driver", cfg.Driver, "host", cfg.Host, "name", cfg.Name)
		return db, db.Close, nil

	case config.DriverSQLite:
		st, err := localstore.Open(cfg.Path, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database opened", "driver", cfg.Driver, "path", cfg.Path)
		return st, func() {
			if err := st.Close(); err != nil {
				log.Warn("closing sqlite db", "error", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
