package storage

import (
	"context"
	"database/sql"
)

// migrateV001 creates the initial schema: day logs and their ordered study
// and exercise items. The SQL is portable between SQLite and PostgreSQL and
// every statement uses IF NOT EXISTS for idempotency.
func migrateV001(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS day_logs (
			id         TEXT PRIMARY KEY,
			ts         BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS study_items (
			log_id    TEXT NOT NULL REFERENCES day_logs(id) ON DELETE CASCADE,
			position  INTEGER NOT NULL,
			title     TEXT NOT NULL,
			notes     TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (log_id, position)
		)`,

		`CREATE TABLE IF NOT EXISTS exercise_items (
			log_id      TEXT NOT NULL REFERENCES day_logs(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL,
			description TEXT NOT NULL,
			reps        INTEGER NOT NULL CHECK (reps > 0),
			completed   BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (log_id, position)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_day_logs_ts ON day_logs(ts)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
