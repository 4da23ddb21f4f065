package session

import (
	"context"
	"database/sql"
	"time"

	"portal/internal/adapters/storage"
)

// SQLiteStore implements Store on the browser_state table.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new browser-state store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a value by browser and key.
// PRE: browserID and key are non-empty
// POST: Returns the value, or ok=false when no row exists
func (s *SQLiteStore) Get(ctx context.Context, browserID, key string) (string, bool, error) {
	query := "SELECT value FROM browser_state WHERE browser_id = ? AND key = ?"

	var value string
	err := s.db.QueryRowContext(ctx, query, browserID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts a value.
// PRE: browserID and key are non-empty
// POST: Value is persisted, replacing any previous value
func (s *SQLiteStore) Set(ctx context.Context, browserID, key, value string) error {
	query := `INSERT INTO browser_state (browser_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(browser_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query, browserID, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Delete removes a value. Absent keys are a no-op.
// PRE: browserID and key are non-empty
// POST: No row exists for (browserID, key)
func (s *SQLiteStore) Delete(ctx context.Context, browserID, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM browser_state WHERE browser_id = ? AND key = ?", browserID, key)
	return err
}
