package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the -local run-mode SubmissionStore/CounterStore backend
// (SPEC_FULL.md §12), mirroring objectstore.SQLiteStore's single-table
// shape.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite kv store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	submission_id TEXT PRIMARY KEY,
	item TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sms_usage (
	tenant_id TEXT NOT NULL,
	month TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (tenant_id, month)
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating sqlite kv store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) PutSubmission(ctx context.Context, submissionID string, item map[string]any) error {
	body, err := json.Marshal(item)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO submissions (submission_id, item) VALUES (?, ?)
ON CONFLICT(submission_id) DO UPDATE SET item = excluded.item
`, submissionID, string(body))
	return err
}

func (s *SQLiteStore) GetCount(ctx context.Context, tenantID, month string) (int, bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM sms_usage WHERE tenant_id = ? AND month = ?`, tenantID, month).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (s *SQLiteStore) Increment(ctx context.Context, tenantID, month string) (int, error) {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sms_usage (tenant_id, month, count) VALUES (?, ?, 1)
ON CONFLICT(tenant_id, month) DO UPDATE SET count = count + 1
`, tenantID, month)
	if err != nil {
		return 0, err
	}
	count, _, err := s.GetCount(ctx, tenantID, month)
	return count, err
}
