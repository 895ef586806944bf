package session

import (
	"errors"
	"time"

	"academia/internal/domain/identity"
)

// Lifetime is how long a console session lives without the backend
// token expiring first.
const Lifetime = 12 * time.Hour

// Session is one logged-in console session. The backend bearer token
// travels inside the User; the session id is what the browser holds.
type Session struct {
	ID        string
	User      identity.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session itself or its bearer token is past
// its useful life.
func (s Session) Expired(now time.Time) bool {
	if now.After(s.ExpiresAt) {
		return true
	}
	return identity.TokenExpired(s.User.Token, now)
}

// Validate checks the session before persisting.
// INVARIANT: every stored session has an id and a token
func (s Session) Validate() error {
	if s.ID == "" {
		return errors.New("session sin id")
	}
	if s.User.Token == "" {
		return errors.New("session sin token")
	}
	return nil
}
