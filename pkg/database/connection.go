package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN names a private in-memory database. Every connection using the
// same name sees the same data until the last one is closed.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:todomvc-%s?mode=memory&cache=shared", name)
}

// Open connects to the SQLite database at dsn. Plain file paths may start
// with ~ and get their directory created.
func Open(dsn string) (*sql.DB, error) {
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if strings.HasPrefix(dsn, "~") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("expanding database path: %w", err)
			}
			dsn = homeDir + dsn[1:]
		}

		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// a single connection keeps in-memory databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables if they don't exist
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id INTEGER NOT NULL,
			title TEXT NOT NULL,
			done BOOLEAN NOT NULL DEFAULT 0,
			duedate TEXT,
			category TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS tasks_id ON tasks(id);
		CREATE TABLE IF NOT EXISTS categories (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
