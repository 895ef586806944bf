package classes

import (
	"context"
	"fmt"

	"academia/internal/adapters/api"
	"academia/internal/domain/attendance"
	"academia/internal/domain/class"
	"academia/internal/domain/person"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates a classes service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// List fetches one page of class sessions.
func (s *RESTService) List(ctx context.Context, page api.PageParams) (api.Page[class.Class], error) {
	var out api.Page[class.Class]
	err := s.client.Get(ctx, "/Clases", api.Params(page.Values()), &out)
	return out, err
}

// Get fetches a single class by id.
func (s *RESTService) Get(ctx context.Context, id int) (class.Class, error) {
	var out class.Class
	err := s.client.Get(ctx, fmt.Sprintf("/Clases/%d", id), nil, &out)
	return out, err
}

// ListByTeacher fetches the classes assigned to one teacher.
func (s *RESTService) ListByTeacher(ctx context.Context, teacherID int) ([]class.Class, error) {
	var out []class.Class
	err := s.client.Get(ctx, fmt.Sprintf("/Clases/profesor/%d", teacherID), nil, &out)
	return out, err
}

// Roster fetches the students enrolled in a class.
// POST: the returned list holds each student at most once
func (s *RESTService) Roster(ctx context.Context, classID int) ([]person.Person, error) {
	var out []person.Person
	if err := s.client.Get(ctx, fmt.Sprintf("/Clases/%d/estudiantes", classID), nil, &out); err != nil {
		return nil, err
	}
	return attendance.DedupeRoster(out), nil
}

// Stats fetches the occupancy aggregate across all classes.
func (s *RESTService) Stats(ctx context.Context) (class.Stats, error) {
	var out class.Stats
	err := s.client.Get(ctx, "/Clases/estadisticas", nil, &out)
	return out, err
}

// Create registers a new class session.
// PRE: draft passed Validate; StartTime is widened before sending
func (s *RESTService) Create(ctx context.Context, draft class.Draft) (class.Class, error) {
	draft.StartTime = class.NormalizeTime(draft.StartTime)
	var out class.Class
	err := s.client.Post(ctx, "/Clases", draft, &out)
	return out, err
}

// Update edits an existing class session.
func (s *RESTService) Update(ctx context.Context, id int, update class.Update) (class.Class, error) {
	update.StartTime = class.NormalizeTime(update.StartTime)
	var out class.Class
	err := s.client.Put(ctx, fmt.Sprintf("/Clases/%d", id), update, &out)
	return out, err
}

// Delete removes a class session.
func (s *RESTService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/Clases/%d", id))
}
