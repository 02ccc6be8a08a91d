package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// OpenPostgres connects to PostgreSQL, pings, runs migrations and returns a
// store that owns the connection pool.
func OpenPostgres(ctx context.Context, dsn string, opts Options) (*SQLStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty: set storage.postgres_dsn or DATABASE_URL")
	}
	opts = opts.withDefaults()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := newMigrationRunner(db, postgresDialect, opts.Logger).Run(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s, err := newSQLStore(db, postgresDialect, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}
