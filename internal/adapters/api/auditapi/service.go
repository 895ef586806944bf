package auditapi

import (
	"context"

	"academia/internal/domain/audit"
)

// Service maps the audit viewer onto /Audit. The trail is read-only from
// the console; Tables and Operations feed the filter dropdowns.
type Service interface {
	Logs(ctx context.Context, filter audit.Filter) (audit.Page, error)
	Summary(ctx context.Context) (audit.Summary, error)
	Tables(ctx context.Context) ([]string, error)
	Operations(ctx context.Context) ([]string, error)
}
