package attendances

import (
	"context"
	"fmt"

	"academia/internal/adapters/api"
	"academia/internal/domain/attendance"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates an attendance service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// List fetches one page of attendance records matching the filter.
func (s *RESTService) List(ctx context.Context, filter attendance.Filter, page api.PageParams) (api.Page[attendance.Record], error) {
	var out api.Page[attendance.Record]
	params := map[string]any{
		"fechaInicio":   filter.StartDate,
		"fechaFin":      filter.EndDate,
		"idInscripcion": filter.EnrollmentID,
		"idEstudiante":  filter.StudentID,
		"idClase":       filter.ClassID,
		"estadoAsis":    filter.Status,
	}
	for key, value := range page.Values() {
		params[key] = value
	}
	err := s.client.Get(ctx, "/Asistencias", api.Params(params), &out)
	return out, err
}

// ListByClass fetches the records of one class on one date. The backend
// reads the date from the fecha query parameter; an empty date means today.
func (s *RESTService) ListByClass(ctx context.Context, classID int, date string) ([]attendance.Record, error) {
	var out []attendance.Record
	query := api.Params(map[string]any{"fecha": date})
	err := s.client.Get(ctx, fmt.Sprintf("/Asistencias/clase/%d", classID), query, &out)
	return out, err
}

// ListByEnrollment fetches the full attendance history of one enrollment.
func (s *RESTService) ListByEnrollment(ctx context.Context, enrollmentID int) ([]attendance.Record, error) {
	var out []attendance.Record
	err := s.client.Get(ctx, fmt.Sprintf("/Asistencias/inscripcion/%d", enrollmentID), nil, &out)
	return out, err
}

// Check asks the backend whether attendance may be registered for the
// class today.
func (s *RESTService) Check(ctx context.Context, classID int) (attendance.RegistrationCheck, error) {
	var out attendance.RegistrationCheck
	err := s.client.Get(ctx, fmt.Sprintf("/Asistencias/clase/%d/validar", classID), nil, &out)
	return out, err
}

// Create persists one attendance record.
// PRE: draft passed Validate
func (s *RESTService) Create(ctx context.Context, draft attendance.Draft) (attendance.Record, error) {
	var out attendance.Record
	err := s.client.Post(ctx, "/Asistencias", draft, &out)
	return out, err
}

// Delete removes one attendance record.
func (s *RESTService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/Asistencias/%d", id))
}
