// Package store provides durable storage for the translation cache
// snapshot: a single namespaced key mapped to an opaque blob, backed by
// SQLite so the cache survives restarts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadBlob returns the value stored under name; found is false when the
// key has never been written.
func (s *Store) LoadBlob(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SaveBlob writes value under name, replacing any previous value wholesale.
func (s *Store) SaveBlob(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blobs (name, value, updated_at) VALUES (?, ?, ?)`,
		name, value, time.Now())
	return err
}

// DeleteBlob removes the key entirely.
func (s *Store) DeleteBlob(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE name = ?`, name)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
