package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"academia/internal/adapters/api/authapi"
	"academia/internal/domain/session"

	"github.com/google/uuid"
)

// SessionSaver persists console sessions.
type SessionSaver interface {
	Save(ctx context.Context, value session.Session) error
}

// LoginInput carries the submitted credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the created session.
type LoginResult struct {
	Session session.Session
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Auth         authapi.Service
	SessionStore SessionSaver
	Now          func() time.Time // nil means time.Now
}

// ExecuteLogin exchanges credentials for a backend token and opens a
// console session around it.
// PRE: Email and Password are non-empty
// POST: Session is persisted; Session.User carries the bearer token
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, errors.New("email y contraseña son obligatorios")
	}

	user, err := deps.Auth.Login(ctx, authapi.Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email)
		return LoginResult{}, err
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	s := session.Session{
		ID:        uuid.New().String(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(session.Lifetime),
	}
	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login", "person_id", user.PersonID, "role", user.Role)
	return LoginResult{Session: s}, nil
}
