package objectstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the -local run-mode Store backend: a single table keyed
// by object key, used by tests and development environments without AWS
// credentials (SPEC_FULL.md §12).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) a sqlite-backed object store at path.
// Pass ":memory:" for ephemeral test stores.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite object store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS objects (
	key TEXT PRIMARY KEY,
	body BLOB NOT NULL,
	content_type TEXT NOT NULL DEFAULT ''
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating sqlite object store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM objects WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO objects (key, body, content_type) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET body = excluded.body, content_type = excluded.content_type
`, key, body, contentType)
	return err
}

// Seed is a test/dev convenience for pre-loading an object.
func (s *SQLiteStore) Seed(ctx context.Context, key string, body []byte) error {
	return s.Put(ctx, key, body, "application/json")
}
