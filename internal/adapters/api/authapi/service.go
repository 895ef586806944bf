package authapi

import (
	"context"

	"academia/internal/domain/identity"
)

// Credentials is the /Auth/login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service authenticates console users against the backend.
type Service interface {
	Login(ctx context.Context, creds Credentials) (identity.User, error)
}
