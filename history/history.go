// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: SQLite-backed launch history: per-app usage counts and the last
// launch time, fed into the list dump and the status bar.

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Current schema version - bump when schema changes require a rebuild.
const schemaVersion = 1

// Store records application launches.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA synchronous=NORMAL;"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}

	var version int
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != 0 && version != schemaVersion {
		// Old schema: drop and rebuild. History is advisory data.
		if _, err := db.Exec(`DROP TABLE IF EXISTS launches`); err != nil {
			return fmt.Errorf("drop old launches table: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS launches (
			id TEXT NOT NULL,
			mechanism TEXT NOT NULL,
			launched_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS launches_id ON launches(id);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create launches table: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`,
		fmt.Sprintf("%d", schemaVersion)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// Record stores one successful launch.
func (s *Store) Record(id, mechanism string) error {
	_, err := s.db.Exec(`INSERT INTO launches (id, mechanism) VALUES (?, ?)`, id, mechanism)
	return err
}

// Counts returns the number of recorded launches per application.
func (s *Store) Counts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT id, COUNT(*) FROM launches GROUP BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Count returns the number of recorded launches for one application.
func (s *Store) Count(id string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM launches WHERE id = ?`, id).Scan(&n)
	return n, err
}

// LastLaunch returns when id was last launched.
func (s *Store) LastLaunch(id string) (time.Time, bool, error) {
	var stamp sql.NullString
	err := s.db.QueryRow(`SELECT MAX(launched_at) FROM launches WHERE id = ?`, id).Scan(&stamp)
	if err != nil {
		return time.Time{}, false, err
	}
	if !stamp.Valid {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", stamp.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse launch time: %w", err)
	}
	return t, true, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
