package authapi

import (
	"context"
	"errors"

	"academia/internal/adapters/api"
	"academia/internal/domain/identity"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates an auth service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// Login exchanges credentials for a bearer token and profile. Unlike the
// rest of the API, /Auth/login responds without the envelope; the gateway
// client falls back to the raw body. The person id is filled from the
// token claims when the profile omits it.
func (s *RESTService) Login(ctx context.Context, creds Credentials) (identity.User, error) {
	var user identity.User
	if err := s.client.Post(ctx, "/Auth/login", creds, &user); err != nil {
		return identity.User{}, err
	}
	if user.Token == "" {
		return identity.User{}, errors.New("la respuesta de login no trae token")
	}
	if user.PersonID == 0 {
		if claims, err := identity.DecodeToken(user.Token); err == nil {
			user.PersonID = claims.PersonID
		}
	}
	return user, nil
}
