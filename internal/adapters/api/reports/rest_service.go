package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"academia/internal/adapters/api"
)

var validEntities = map[string]bool{
	EntityAttendances: true,
	EntityPayments:    true,
	EntityEnrollments: true,
	EntityClasses:     true,
}

var validFormats = map[string]bool{
	FormatCSV:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
	now    func() time.Time
}

// NewRESTService creates a reports service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client, now: time.Now}
}

// Download streams one report export.
// PRE: entity and format name a backend report endpoint
// POST: the caller owns Report.Body and must close it
func (s *RESTService) Download(ctx context.Context, entity, format string, filters map[string]any) (Report, error) {
	if !validEntities[entity] {
		return Report{}, fmt.Errorf("entidad de reporte desconocida: %q", entity)
	}
	if !validFormats[format] {
		return Report{}, fmt.Errorf("formato de reporte desconocido: %q", format)
	}
	if format == FormatJSON && entity != EntityAttendances {
		return Report{}, fmt.Errorf("el backend solo sirve JSON para asistencias")
	}

	path := "/" + entity + "/reporte/" + format
	body, contentType, err := s.client.Download(ctx, path, api.Params(filters))
	if err != nil {
		return Report{}, err
	}
	return Report{
		Body:        body,
		ContentType: contentType,
		Filename:    s.filename(entity, format),
	}, nil
}

// filename mirrors the backend's suggested names:
// reporte_<entity>_<YYYY-MM-DD>.<ext>.
func (s *RESTService) filename(entity, format string) string {
	return fmt.Sprintf("reporte_%s_%s.%s",
		strings.ToLower(entity), s.now().Format("2006-01-02"), format)
}
