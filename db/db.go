package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens or creates the run-ledger SQLite database at the given
// path. Parent directories are created if they don't exist.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Verify connection works
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// migrate runs all database migrations.
// Migrations are idempotent (safe to run multiple times).
func migrate(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			project_folder TEXT,
			output_root TEXT,
			routing_mode TEXT,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME,
			matches_processed INTEGER DEFAULT 0,
			matches_failed INTEGER DEFAULT 0,
			events_skipped INTEGER DEFAULT 0,
			clips_written INTEGER DEFAULT 0,
			frames_written INTEGER DEFAULT 0,
			stills_written INTEGER DEFAULT 0
		)
	`)
	if err != nil {
		return err
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS clip_jobs (
			id INTEGER PRIMARY KEY,
			run_id TEXT,
			match_name TEXT,
			half INTEGER,
			category TEXT,
			tag TEXT,
			start_sec REAL,
			end_sec REAL,
			frames_written INTEGER,
			stills_written INTEGER,
			status TEXT,
			error TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}
