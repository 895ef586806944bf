package billingapi

import (
	"context"

	"academia/internal/adapters/api"
	"academia/internal/domain/billing"
)

// Service maps billing intents onto /Cobros. Status and Summary read the
// backend's derived payment views; List and History are paginated.
type Service interface {
	List(ctx context.Context, filter billing.Filter, page api.PageParams) (api.Page[billing.Payment], error)
	Create(ctx context.Context, draft billing.Draft) (billing.Payment, error)
	Update(ctx context.Context, id int, update billing.Update) (billing.Payment, error)
	Delete(ctx context.Context, id int) error
	Status(ctx context.Context, studentID int) (billing.PaymentStatus, error)
	Summary(ctx context.Context, month string, year int) ([]billing.SummaryRow, error)
	History(ctx context.Context, studentID int, page api.PageParams) (api.Page[billing.Payment], error)
}
