package auditapi

import (
	"context"

	"academia/internal/adapters/api"
	"academia/internal/domain/audit"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates an audit service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// Logs fetches one page of the audit trail. Note the endpoint's own
// pagination vocabulary (pagina / tamañoPagina).
func (s *RESTService) Logs(ctx context.Context, filter audit.Filter) (audit.Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = api.DefaultPageSize
	}
	query := api.Params(map[string]any{
		"tablaAfectada": filter.Table,
		"tipoOperacion": filter.Operation,
		"idUsuario":     filter.UserID,
		"fechaDesde":    filter.Since,
		"fechaHasta":    filter.Until,
		"idRegistro":    filter.RecordID,
		"exitoso":       filter.Succeeded,
		"pagina":        filter.Page,
		"tamañoPagina":  filter.PageSize,
	})
	var out audit.Page
	err := s.client.Get(ctx, "/Audit", query, &out)
	return out, err
}

// Summary fetches the trail activity rollup.
func (s *RESTService) Summary(ctx context.Context) (audit.Summary, error) {
	var out audit.Summary
	err := s.client.Get(ctx, "/Audit/resumen", nil, &out)
	return out, err
}

// Tables fetches the distinct audited table names.
func (s *RESTService) Tables(ctx context.Context) ([]string, error) {
	var out []string
	err := s.client.Get(ctx, "/Audit/tablas", nil, &out)
	return out, err
}

// Operations fetches the distinct operation types.
func (s *RESTService) Operations(ctx context.Context) ([]string, error) {
	var out []string
	err := s.client.Get(ctx, "/Audit/tipos-operacion", nil, &out)
	return out, err
}
