package enrollments

import (
	"context"
	"fmt"

	"academia/internal/adapters/api"
	"academia/internal/domain/enrollment"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates an enrollments service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// List fetches one page of enrollments.
func (s *RESTService) List(ctx context.Context, page api.PageParams) (api.Page[enrollment.Enrollment], error) {
	var out api.Page[enrollment.Enrollment]
	err := s.client.Get(ctx, "/Inscripciones", api.Params(page.Values()), &out)
	return out, err
}

// ListByClass fetches the enrollments of one class.
func (s *RESTService) ListByClass(ctx context.Context, classID int) ([]enrollment.Enrollment, error) {
	var out []enrollment.Enrollment
	err := s.client.Get(ctx, fmt.Sprintf("/Inscripciones/clase/%d", classID), nil, &out)
	return out, err
}

// Create enrolls a student in a class.
func (s *RESTService) Create(ctx context.Context, draft enrollment.Draft) (enrollment.Enrollment, error) {
	var out enrollment.Enrollment
	err := s.client.Post(ctx, "/Inscripciones", draft, &out)
	return out, err
}

// Update edits an enrollment's state or withdrawal fields.
func (s *RESTService) Update(ctx context.Context, id int, update enrollment.Update) (enrollment.Enrollment, error) {
	var out enrollment.Enrollment
	err := s.client.Put(ctx, fmt.Sprintf("/Inscripciones/%d", id), update, &out)
	return out, err
}

// Delete removes an enrollment.
func (s *RESTService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/Inscripciones/%d", id))
}
