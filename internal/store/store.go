// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists scored result sets in a local SQLite database
// behind a small key-value contract. Writes are best-effort: callers
// treat a failed Put as a warning, never as a pipeline failure.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

const defaultDBFile = "explorer.db"

// resultsCollection is the collection name for saved query results.
const resultsCollection = "results"

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// Store is a SQLite-backed key-value store of JSON-encoded values grouped
// into named collections.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		collection TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (collection, key)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// NormalizeKey lowercases and trims a key so lookups are insensitive to
// query casing and padding.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Put stores a JSON-encoded value under (collection, key), replacing any
// existing value.
func (s *Store) Put(ctx context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (collection, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(collection, key) DO UPDATE SET
			value=excluded.value, updated_at=excluded.updated_at`,
		collection, NormalizeKey(key), string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing %s/%s: %w", collection, key, err)
	}
	return nil
}

// Get loads the value stored under (collection, key) into out. Returns
// ErrNotFound when nothing is stored.
func (s *Store) Get(ctx context.Context, collection, key string, out any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE collection = ? AND key = ?`,
		collection, NormalizeKey(key),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s/%s: %w", collection, key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("loading %s/%s: %w", collection, key, err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("decoding %s/%s: %w", collection, key, err)
	}
	return nil
}

// Keys lists the keys present in a collection, sorted.
func (s *Store) Keys(ctx context.Context, collection string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE collection = ? ORDER BY key`, collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// SaveResults persists a query's scored records under the normalized
// query string.
func (s *Store) SaveResults(ctx context.Context, query string, scored []types.ScoredRecord) error {
	return s.Put(ctx, resultsCollection, query, scored)
}

// LoadResults retrieves the scored records previously saved for a query.
func (s *Store) LoadResults(ctx context.Context, query string) ([]types.ScoredRecord, error) {
	var scored []types.ScoredRecord
	if err := s.Get(ctx, resultsCollection, query, &scored); err != nil {
		return nil, err
	}
	return scored, nil
}
