package session

import (
	"context"

	domain "academia/internal/domain/session"
)

// Store persists console sessions so logins survive a server restart.
type Store interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int, error)
}
