// Package history persists recent search queries in a local SQLite
// database so the TUI can offer them for reuse.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vicilliar/marqo-overall-demo/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS queries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	query      TEXT NOT NULL,
	mode       TEXT NOT NULL,
	hit_count  INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at DESC);
`

// Entry is one recorded search.
type Entry struct {
	Query    string
	Mode     domain.SearchMode
	HitCount int
	At       time.Time
}

// Store is a SQLite-backed query history.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record stores one executed search.
func (s *Store) Record(ctx context.Context, query string, mode domain.SearchMode, hitCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (query, mode, hit_count, created_at) VALUES (?, ?, ?, ?)`,
		query, mode.String(), hitCount, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording query: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT query, mode, hit_count, created_at FROM queries ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent queries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var e Entry
		var mode, at string
		if err := rows.Scan(&e.Query, &mode, &e.HitCount, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if mode == domain.ModeTensor.String() {
			e.Mode = domain.ModeTensor
		} else {
			e.Mode = domain.ModeLexical
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, at); parseErr == nil {
			e.At = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}
