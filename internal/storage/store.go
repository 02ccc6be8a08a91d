package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/runnerr0/studylog/internal/daylog"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore implements Store on top of database/sql. The same queries serve
// SQLite and PostgreSQL; only placeholders and PRAGMAs differ.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	opts    Options
	ownsDB  bool

	// Prepared statements
	insertStudy    *sql.Stmt
	insertExercise *sql.Stmt
}

func newSQLStore(db *sql.DB, d dialect, opts Options) (*SQLStore, error) {
	s := &SQLStore{db: db, dialect: d, opts: opts.withDefaults()}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLStore) prepareStatements() error {
	var err error

	s.insertStudy, err = s.db.Prepare(s.dialect.rebind(`
		INSERT INTO study_items (log_id, position, title, notes, completed)
		VALUES (?, ?, ?, ?, ?)
	`))
	if err != nil {
		return err
	}

	s.insertExercise, err = s.db.Prepare(s.dialect.rebind(`
		INSERT INTO exercise_items (log_id, position, description, reps, completed)
		VALUES (?, ?, ?, ?, ?)
	`))
	return err
}

// FetchAllLogs returns every log with its items, newest first. Logs and items
// are read inside one transaction so the result is a consistent snapshot.
func (s *SQLStore) FetchAllLogs(ctx context.Context) ([]daylog.DayLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	logs, err := s.loadLogs(ctx, tx, "", nil)
	if err != nil {
		return nil, err
	}
	return logs, tx.Commit()
}

// GetLog retrieves a single log by id.
func (s *SQLStore) GetLog(ctx context.Context, id string) (*daylog.DayLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	logs, err := s.loadLogs(ctx, tx, "WHERE id = ?", []any{id})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &logs[0], nil
}

// loadLogs reads the logs matching where, then their study and exercise
// items. Each result set is drained and closed before the next query runs.
func (s *SQLStore) loadLogs(ctx context.Context, q querier, where string, args []any) ([]daylog.DayLog, error) {
	rows, err := q.QueryContext(ctx, s.dialect.rebind("SELECT id, ts FROM day_logs "+where+" ORDER BY ts DESC, id"), args...)
	if err != nil {
		return nil, fmt.Errorf("query day logs: %w", err)
	}

	logs := []daylog.DayLog{}
	index := map[string]int{}
	for rows.Next() {
		l := daylog.DayLog{
			StudyItems:    []daylog.StudyItem{},
			ExerciseItems: []daylog.ExerciseItem{},
		}
		if err := rows.Scan(&l.ID, &l.Timestamp); err != nil {
			rows.Close()
			return nil, err
		}
		index[l.ID] = len(logs)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(logs) == 0 {
		return logs, nil
	}

	subquery := "SELECT id FROM day_logs " + where

	rows, err = q.QueryContext(ctx, s.dialect.rebind(`
		SELECT log_id, title, notes, completed FROM study_items
		WHERE log_id IN (`+subquery+`)
		ORDER BY log_id, position
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("query study items: %w", err)
	}
	for rows.Next() {
		var logID string
		var it daylog.StudyItem
		if err := rows.Scan(&logID, &it.Title, &it.Notes, &it.Completed); err != nil {
			rows.Close()
			return nil, err
		}
		if i, ok := index[logID]; ok {
			logs[i].StudyItems = append(logs[i].StudyItems, it)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = q.QueryContext(ctx, s.dialect.rebind(`
		SELECT log_id, description, reps, completed FROM exercise_items
		WHERE log_id IN (`+subquery+`)
		ORDER BY log_id, position
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("query exercise items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var logID string
		var it daylog.ExerciseItem
		if err := rows.Scan(&logID, &it.Description, &it.Reps, &it.Completed); err != nil {
			return nil, err
		}
		if i, ok := index[logID]; ok {
			logs[i].ExerciseItems = append(logs[i].ExerciseItems, it)
		}
	}
	return logs, rows.Err()
}

// PersistLog writes input as today's log. When a log already falls inside
// today's window its items are replaced and its id and timestamp kept;
// otherwise a new log is created with a fresh id and the current time.
func (s *SQLStore) PersistLog(ctx context.Context, input daylog.DailyLogInput) (*daylog.DayLog, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid day log: %w", err)
	}

	now, start, end := s.opts.today()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var (
		id      string
		ts      int64
		created bool
	)
	err = tx.QueryRowContext(ctx,
		s.dialect.rebind("SELECT id, ts FROM day_logs WHERE ts >= ? AND ts < ? ORDER BY ts DESC, id LIMIT 1"),
		daylog.Nanos(start), daylog.Nanos(end),
	).Scan(&id, &ts)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id, ts, created = newID(), daylog.Nanos(now), true
		if _, err := tx.ExecContext(ctx,
			s.dialect.rebind("INSERT INTO day_logs (id, ts) VALUES (?, ?)"), id, ts,
		); err != nil {
			return nil, fmt.Errorf("insert day log: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find today's log: %w", err)
	default:
		for _, table := range []string{"study_items", "exercise_items"} {
			if _, err := tx.ExecContext(ctx,
				s.dialect.rebind("DELETE FROM "+table+" WHERE log_id = ?"), id,
			); err != nil {
				return nil, fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			s.dialect.rebind("UPDATE day_logs SET updated_at = CURRENT_TIMESTAMP WHERE id = ?"), id,
		); err != nil {
			return nil, fmt.Errorf("touch day log: %w", err)
		}
	}

	insertStudy := tx.StmtContext(ctx, s.insertStudy)
	for i, it := range input.StudyItems {
		if _, err := insertStudy.ExecContext(ctx, id, i, it.Title, it.Notes, it.Completed); err != nil {
			return nil, fmt.Errorf("insert study item %d: %w", i+1, err)
		}
	}
	insertExercise := tx.StmtContext(ctx, s.insertExercise)
	for i, it := range input.ExerciseItems {
		if _, err := insertExercise.ExecContext(ctx, id, i, it.Description, it.Reps, it.Completed); err != nil {
			return nil, fmt.Errorf("insert exercise item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.opts.Logger.Debug("persisted day log",
		"id", id, "created", created, "backend", s.dialect.name,
		"study", len(input.StudyItems), "exercise", len(input.ExerciseItems))

	in := cloneInput(input)
	return &daylog.DayLog{ID: id, Timestamp: ts, StudyItems: in.StudyItems, ExerciseItems: in.ExerciseItems}, nil
}

// PruneBefore deletes logs whose timestamp is before cutoff, along with
// their items, and returns the number of logs removed.
func (s *SQLStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ts := daylog.Nanos(cutoff)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"study_items", "exercise_items"} {
		if _, err := tx.ExecContext(ctx, s.dialect.rebind(
			"DELETE FROM "+table+" WHERE log_id IN (SELECT id FROM day_logs WHERE ts < ?)"), ts,
		); err != nil {
			return 0, fmt.Errorf("prune %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, s.dialect.rebind("DELETE FROM day_logs WHERE ts < ?"), ts)
	if err != nil {
		return 0, fmt.Errorf("prune day logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// PurgeAll deletes every log and item.
func (s *SQLStore) PurgeAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmts := []string{
		"DELETE FROM study_items",
		"DELETE FROM exercise_items",
		"DELETE FROM day_logs",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return tx.Commit()
}

// GetStats returns aggregate statistics about the database.
func (s *SQLStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Backend: s.dialect.name}

	counts := []struct {
		query string
		dst   *int64
	}{
		{"SELECT COUNT(*) FROM day_logs", &stats.TotalLogs},
		{"SELECT COUNT(*) FROM study_items", &stats.TotalStudyItems},
		{"SELECT COUNT(*) FROM exercise_items", &stats.TotalExerciseItems},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count (%s): %w", c.query, err)
		}
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalLogs > 0 {
		var oldest, newest int64
		err := s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM day_logs").Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("log time range: %w", err)
		}
		stats.OldestLog = daylog.TimeOf(oldest)
		stats.NewestLog = daylog.TimeOf(newest)
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is closed
// only when the store opened it itself.
func (s *SQLStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertStudy, s.insertExercise} {
		if stmt != nil {
			stmt.Close()
		}
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
