package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single-user local database; one connection keeps pragmas consistent.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		drv.Close()
		return nil, err
	}

	return &Store{db: db, drv: drv, seq: seq}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

// eventTables lists every table Reset clears.
var eventTables = []string{"request_events", "assessment_events"}

// Reset deletes all stored events and returns the number of rows removed.
// The sequence counter keeps counting from where it was.
func (s *Store) Reset(ctx context.Context) (int64, error) {
	var total int64
	for _, t := range eventTables {
		q, args := entsql.Dialect(dialect.SQLite).Delete(t).Query()
		var res sql.Result
		if err := s.drv.Exec(ctx, q, args, &res); err != nil {
			return total, fmt.Errorf("clear %s: %w", t, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("clear %s: %w", t, err)
		}
		total += n
	}
	return total, nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp_ms INTEGER NOT NULL,
		request_id TEXT NOT NULL DEFAULT '',
		operation TEXT NOT NULL DEFAULT '',
		method TEXT NOT NULL DEFAULT '',
		endpoint TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT '',
		status INTEGER NOT NULL DEFAULT 0,
		attempt INTEGER NOT NULL DEFAULT 1,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_kind TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS request_events_operation ON request_events (operation)`,
	`CREATE INDEX IF NOT EXISTS request_events_timestamp ON request_events (timestamp_ms)`,
	`CREATE TABLE IF NOT EXISTS assessment_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp_ms INTEGER NOT NULL,
		assessment_id TEXT NOT NULL,
		risk_level TEXT NOT NULL DEFAULT '',
		fallback INTEGER NOT NULL DEFAULT 0,
		offline INTEGER NOT NULL DEFAULT 0,
		initial_answers INTEGER NOT NULL DEFAULT 0,
		follow_up_answers INTEGER NOT NULL DEFAULT 0,
		result_json TEXT NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS assessment_events_assessment_id ON assessment_events (assessment_id)`,
}

// migrate creates the event tables if they do not exist.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. INNERBALANCE_DB environment variable
// 2. $XDG_DATA_HOME/innerbalance/innerbalance.db
// 3. ~/.local/share/innerbalance/innerbalance.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("INNERBALANCE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "innerbalance", "innerbalance.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
