package enrollments

import (
	"context"

	"academia/internal/adapters/api"
	"academia/internal/domain/enrollment"
)

// Service maps enrollment intents onto /Inscripciones. The list endpoint
// is paginated; ListByClass returns the class roster whole.
type Service interface {
	List(ctx context.Context, page api.PageParams) (api.Page[enrollment.Enrollment], error)
	ListByClass(ctx context.Context, classID int) ([]enrollment.Enrollment, error)
	Create(ctx context.Context, draft enrollment.Draft) (enrollment.Enrollment, error)
	Update(ctx context.Context, id int, update enrollment.Update) (enrollment.Enrollment, error)
	Delete(ctx context.Context, id int) error
}
