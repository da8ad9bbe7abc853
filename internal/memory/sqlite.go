// Package memory persists tasks, habits and logbook snapshots in SQLite.
package memory

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "daywing.db"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SQLiteStore implements task, habit and logbook persistence using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	basePath string
}

// NewSQLiteStore opens (or creates) the database in basePath.
// Pass ":memory:" for a private in-memory database.
func NewSQLiteStore(basePath string) (*SQLiteStore, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
	} else {
		dbPath = filepath.Join(basePath, DBFileName)

		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	store := &SQLiteStore{
		db:       db,
		basePath: basePath,
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		due_date TEXT,
		due_has_time INTEGER NOT NULL DEFAULT 0,
		priority INTEGER NOT NULL DEFAULT 0,
		tags TEXT,                          -- JSON array
		alert_hour INTEGER,                 -- NULL when no alert is set
		alert_minute INTEGER NOT NULL DEFAULT 0,
		alert_fired INTEGER NOT NULL DEFAULT 0,
		snoozed_until TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		priority INTEGER NOT NULL DEFAULT 0,
		schedule TEXT NOT NULL,             -- JSON Schedule
		tags TEXT,                          -- JSON array
		alert_hour INTEGER,
		alert_minute INTEGER NOT NULL DEFAULT 0,
		alert_fired INTEGER NOT NULL DEFAULT 0,
		snoozed_until TEXT,
		replenished_at TEXT,
		last_completed_at TEXT,
		archived INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Logbook: summaries of archived tasks
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority INTEGER NOT NULL DEFAULT 0,
		tags TEXT,
		completed_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		archived_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
	CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
	CREATE INDEX IF NOT EXISTS idx_snapshots_completed_at ON snapshots(completed_at);

	-- FTS5 for logbook keyword search
	CREATE VIRTUAL TABLE IF NOT EXISTS snapshots_fts USING fts5(
		id UNINDEXED,
		title,
		description,
		content='snapshots',
		content_rowid='rowid'
	);

	CREATE TRIGGER IF NOT EXISTS snapshots_fts_ai AFTER INSERT ON snapshots BEGIN
		INSERT INTO snapshots_fts(rowid, id, title, description)
		VALUES (new.rowid, new.id, new.title, new.description);
	END;

	CREATE TRIGGER IF NOT EXISTS snapshots_fts_ad AFTER DELETE ON snapshots BEGIN
		INSERT INTO snapshots_fts(snapshots_fts, rowid, id, title, description)
		VALUES ('delete', old.rowid, old.id, old.title, old.description);
	END;

	CREATE TRIGGER IF NOT EXISTS snapshots_fts_au AFTER UPDATE ON snapshots BEGIN
		INSERT INTO snapshots_fts(snapshots_fts, rowid, id, title, description)
		VALUES ('delete', old.rowid, old.id, old.title, old.description);
		INSERT INTO snapshots_fts(rowid, id, title, description)
		VALUES (new.rowid, new.id, new.title, new.description);
	END;
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for diagnostics and tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Path returns the data directory the store was opened in.
func (s *SQLiteStore) Path() string {
	return s.basePath
}
