package dancestyles

import (
	"context"
	"fmt"

	"academia/internal/adapters/api"
	"academia/internal/domain/dancestyle"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates a dance-styles service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// List fetches one page of dance styles, active or not.
func (s *RESTService) List(ctx context.Context, page api.PageParams) (api.Page[dancestyle.Style], error) {
	var out api.Page[dancestyle.Style]
	err := s.client.Get(ctx, "/EstilosDanza", api.Params(page.Values()), &out)
	return out, err
}

// ListActive fetches the styles available for new classes.
func (s *RESTService) ListActive(ctx context.Context) ([]dancestyle.Style, error) {
	var out []dancestyle.Style
	err := s.client.Get(ctx, "/EstilosDanza/activos", nil, &out)
	return out, err
}

// Create registers a new dance style.
// PRE: draft passed Validate
func (s *RESTService) Create(ctx context.Context, draft dancestyle.Draft) (dancestyle.Style, error) {
	var out dancestyle.Style
	err := s.client.Post(ctx, "/EstilosDanza", draft, &out)
	return out, err
}

// Update edits an existing dance style.
func (s *RESTService) Update(ctx context.Context, id int, draft dancestyle.Draft) (dancestyle.Style, error) {
	var out dancestyle.Style
	err := s.client.Put(ctx, fmt.Sprintf("/EstilosDanza/%d", id), draft, &out)
	return out, err
}

// Delete removes a dance style. The backend refuses with a conflict when
// classes still reference the style.
func (s *RESTService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/EstilosDanza/%d", id))
}
