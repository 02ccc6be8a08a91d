package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// OpenSQLite opens the SQLite database at path, creating its directory if
// needed, runs migrations and returns a store that owns the connection.
// journalMode overrides the default WAL journal.
func OpenSQLite(ctx context.Context, path, journalMode string, opts Options) (*SQLStore, error) {
	opts = opts.withDefaults()

	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases
	// from splitting into one database per connection.
	db.SetMaxOpenConns(1)

	d := sqliteDialect
	if journalMode != "" {
		d.journalMode = journalMode
	}
	if err := newMigrationRunner(db, d, opts.Logger).Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s, err := newSQLStore(db, d, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}
