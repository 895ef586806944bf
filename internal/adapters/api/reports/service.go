package reports

import (
	"context"
	"io"
)

// Entities with a /reporte endpoint on the backend.
const (
	EntityAttendances = "Asistencias"
	EntityPayments    = "Cobros"
	EntityEnrollments = "Inscripciones"
	EntityClasses     = "Clases"
)

// Formats the backend can render. JSON is only served for attendances.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Report is a backend-rendered export, streamed through to the browser.
type Report struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
}

// Service proxies backend report exports. Filters are passed through
// verbatim as query parameters; each listing page sends its own set.
type Service interface {
	Download(ctx context.Context, entity, format string, filters map[string]any) (Report, error)
}
