package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runnerr0/studylog/internal/logging"
)

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	Apply   func(ctx context.Context, tx *sql.Tx) error
}

// MigrationRunner applies pending migrations to a SQLite or PostgreSQL database.
type MigrationRunner struct {
	db         *sql.DB
	dialect    dialect
	logger     *slog.Logger
	migrations []migration
}

// NewMigrationRunner creates a MigrationRunner for a SQLite database.
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return newMigrationRunner(db, sqliteDialect, nil)
}

func newMigrationRunner(db *sql.DB, d dialect, logger *slog.Logger) *MigrationRunner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &MigrationRunner{
		db:      db,
		dialect: d,
		logger:  logger,
		migrations: []migration{
			{Version: 1, Name: "initial_schema", Apply: migrateV001},
		},
	}
}

// Run applies all pending migrations in order. On SQLite it first sets the
// journal mode and enables foreign keys. It then creates the
// schema_migrations tracking table and applies each migration that hasn't
// been recorded yet.
func (r *MigrationRunner) Run(ctx context.Context) error {
	if r.dialect.pragmas {
		mode := strings.ToUpper(r.dialect.journalMode)
		if mode == "" {
			mode = "WAL"
		}
		if _, err := r.db.ExecContext(ctx, "PRAGMA journal_mode = "+mode); err != nil {
			return fmt.Errorf("set journal mode: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	if _, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range r.migrations {
		applied, err := r.isApplied(ctx, m.Version)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if applied {
			continue
		}

		if err := r.apply(ctx, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		r.logger.Info("applied migration", "version", m.Version, "name", m.Name, "dialect", r.dialect.name)
	}

	return nil
}

// isApplied checks whether a migration version has already been recorded.
func (r *MigrationRunner) isApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		r.dialect.rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"), version,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// apply executes a migration inside a transaction and records it.
func (r *MigrationRunner) apply(ctx context.Context, m migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := m.Apply(ctx, tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		r.dialect.rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"),
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}
