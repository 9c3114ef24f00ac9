// Package store provides SQLite-based persistence for the dashboard CLI.
// It keeps a snapshot of the last fetched collection per resource so listings
// can be served offline with --cached. Snapshots are invalidated after every
// successful write; they are never consulted before a mutation.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned when a resource has no cached snapshot.
var ErrNoSnapshot = errors.New("store: no snapshot for resource")

// Store represents the SQLite database store
type Store struct {
	db *sql.DB
}

// New creates a new store connection
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the database schema
func (s *Store) Initialize() error {
	schema := `
	-- Last fetched collection per resource
	CREATE TABLE IF NOT EXISTS snapshots (
		resource TEXT PRIMARY KEY,
		payload JSON NOT NULL,
		fetched_at DATETIME NOT NULL
	);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveSnapshot records the raw payload of a successful list fetch.
func (s *Store) SaveSnapshot(resource string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (resource, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(resource) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		resource, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", resource, err)
	}
	return nil
}

// LoadSnapshot returns the cached payload and its fetch time.
func (s *Store) LoadSnapshot(resource string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt string

	row := s.db.QueryRow(`SELECT payload, fetched_at FROM snapshots WHERE resource = ?`, resource)
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrNoSnapshot
		}
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot for %s: %w", resource, err)
	}

	at, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse snapshot time: %w", err)
	}
	return payload, at, nil
}

// InvalidateSnapshot drops the cached payload for a resource. Called after
// any successful mutation so a stale listing is never served.
func (s *Store) InvalidateSnapshot(resource string) error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE resource = ?`, resource); err != nil {
		return fmt.Errorf("failed to invalidate snapshot for %s: %w", resource, err)
	}
	return nil
}
