package billingapi

import (
	"context"
	"fmt"

	"academia/internal/adapters/api"
	"academia/internal/domain/billing"
)

// RESTService implements Service against the remote backend.
type RESTService struct {
	client *api.Client
}

// NewRESTService creates a billing service.
func NewRESTService(client *api.Client) *RESTService {
	return &RESTService{client: client}
}

// List fetches one page of payments matching the filter.
func (s *RESTService) List(ctx context.Context, filter billing.Filter, page api.PageParams) (api.Page[billing.Payment], error) {
	var out api.Page[billing.Payment]
	params := map[string]any{
		"idEstudiante":        filter.StudentID,
		"estadoCobro":         filter.State,
		"tipoCobro":           filter.Kind,
		"mesCorrespondiente":  filter.Month,
		"anioCorrespondiente": filter.Year,
		"metodoPago":          filter.Method,
		"busqueda":            filter.Search,
		"fechaInicio":         filter.StartDate,
		"fechaFin":            filter.EndDate,
	}
	for key, value := range page.Values() {
		params[key] = value
	}
	err := s.client.Get(ctx, "/Cobros", api.Params(params), &out)
	return out, err
}

// Create registers a new payment.
// PRE: draft passed Validate
func (s *RESTService) Create(ctx context.Context, draft billing.Draft) (billing.Payment, error) {
	var out billing.Payment
	err := s.client.Post(ctx, "/Cobros", draft, &out)
	return out, err
}

// Update edits an existing payment.
func (s *RESTService) Update(ctx context.Context, id int, update billing.Update) (billing.Payment, error) {
	var out billing.Payment
	err := s.client.Put(ctx, fmt.Sprintf("/Cobros/%d", id), update, &out)
	return out, err
}

// Delete removes a payment.
func (s *RESTService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/Cobros/%d", id))
}

// Status fetches a student's month-by-month payment state.
func (s *RESTService) Status(ctx context.Context, studentID int) (billing.PaymentStatus, error) {
	var out billing.PaymentStatus
	err := s.client.Get(ctx, fmt.Sprintf("/Cobros/estado-pago/%d", studentID), nil, &out)
	return out, err
}

// Summary fetches the all-students paid/unpaid rollup for one month.
func (s *RESTService) Summary(ctx context.Context, month string, year int) ([]billing.SummaryRow, error) {
	var out []billing.SummaryRow
	query := api.Params(map[string]any{"mes": month, "anio": year})
	err := s.client.Get(ctx, "/Cobros/resumen-pagos", query, &out)
	return out, err
}

// History fetches one page of a student's payment history.
func (s *RESTService) History(ctx context.Context, studentID int, page api.PageParams) (api.Page[billing.Payment], error) {
	var out api.Page[billing.Payment]
	err := s.client.Get(ctx, fmt.Sprintf("/Cobros/historial/%d", studentID), api.Params(page.Values()), &out)
	return out, err
}
