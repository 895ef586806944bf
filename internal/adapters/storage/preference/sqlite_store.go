package preference

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"academia/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new preference store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves one preference value. An unset key returns "".
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) Get(ctx context.Context, personID int, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value FROM preference WHERE person_id = ? AND key = ?
	`, personID, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Set upserts one preference value.
func (s *SQLiteStore) Set(ctx context.Context, personID int, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preference (person_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(person_id, key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`, personID, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}
