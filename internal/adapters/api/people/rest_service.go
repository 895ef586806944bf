package people

import (
	"context"
	"fmt"

	"academia/internal/adapters/api"
	"academia/internal/domain/person"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates a people service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// List fetches one page of people.
func (s *RESTService) List(ctx context.Context, page api.PageParams) (api.Page[person.Person], error) {
	var out api.Page[person.Person]
	err := s.client.Get(ctx, "/Personas", api.Params(page.Values()), &out)
	return out, err
}

// Get fetches a single person by id.
func (s *RESTService) Get(ctx context.Context, id int) (person.Person, error) {
	var out person.Person
	err := s.client.Get(ctx, fmt.Sprintf("/Personas/%d", id), nil, &out)
	return out, err
}

// ListTeachers fetches every teacher, for select options.
func (s *RESTService) ListTeachers(ctx context.Context) ([]person.Person, error) {
	var out []person.Person
	err := s.client.Get(ctx, "/Personas/profesores", nil, &out)
	return out, err
}

// ListStudents fetches every student, for select options.
func (s *RESTService) ListStudents(ctx context.Context) ([]person.Person, error) {
	var out []person.Person
	err := s.client.Get(ctx, "/Personas/estudiantes", nil, &out)
	return out, err
}

// Create registers a new person.
// PRE: draft passed Validate
func (s *RESTService) Create(ctx context.Context, draft person.Draft) (person.Person, error) {
	var out person.Person
	err := s.client.Post(ctx, "/Personas", draft, &out)
	return out, err
}

// Update edits an existing person.
func (s *RESTService) Update(ctx context.Context, id int, update person.Update) (person.Person, error) {
	var out person.Person
	err := s.client.Put(ctx, fmt.Sprintf("/Personas/%d", id), update, &out)
	return out, err
}

// Delete removes a person.
func (s *RESTService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/Personas/%d", id))
}
