package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"academia/internal/adapters/storage"
	domain "academia/internal/domain/session"
)

// ErrNotFound marks a session id with no stored row.
var ErrNotFound = errors.New("session no encontrada")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a session by id.
// POST: Returns the persisted session or ErrNotFound
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, token, person_id, first_name, last_name, email, role,
			is_teacher, is_admin, created_at, expires_at
		FROM session
		WHERE id = ?
	`, id)
	return scanSession(row.Scan)
}

// Save upserts a session.
// PRE: value passed Validate
// POST: Session is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, value domain.Session) error {
	if err := value.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (
			id, token, person_id, first_name, last_name, email, role,
			is_teacher, is_admin, created_at, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token=excluded.token,
			person_id=excluded.person_id,
			first_name=excluded.first_name,
			last_name=excluded.last_name,
			email=excluded.email,
			role=excluded.role,
			is_teacher=excluded.is_teacher,
			is_admin=excluded.is_admin,
			expires_at=excluded.expires_at
	`,
		value.ID,
		value.User.Token,
		value.User.PersonID,
		value.User.FirstName,
		value.User.LastName,
		value.User.Email,
		value.User.Role,
		boolToInt(value.User.IsTeacher),
		boolToInt(value.User.IsAdmin),
		value.CreatedAt.UTC().Format(time.RFC3339),
		value.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting an absent id is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = ?`, id)
	return err
}

// DeleteExpired removes sessions past their expiry.
// POST: Returns how many sessions were removed
func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE expires_at < ?`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func scanSession(scan func(dest ...any) error) (domain.Session, error) {
	var out domain.Session
	var isTeacher, isAdmin int
	var createdAt, expiresAt string
	if err := scan(
		&out.ID,
		&out.User.Token,
		&out.User.PersonID,
		&out.User.FirstName,
		&out.User.LastName,
		&out.User.Email,
		&out.User.Role,
		&isTeacher,
		&isAdmin,
		&createdAt,
		&expiresAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Session{}, ErrNotFound
		}
		return domain.Session{}, err
	}
	out.User.IsTeacher = isTeacher != 0
	out.User.IsAdmin = isAdmin != 0
	out.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	out.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt)
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
