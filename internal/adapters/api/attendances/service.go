package attendances

import (
	"context"

	"academia/internal/adapters/api"
	"academia/internal/domain/attendance"
)

// Service maps attendance intents onto /Asistencias. Check asks the
// backend whether registering attendance for a class is allowed today;
// the console never computes that gate locally.
type Service interface {
	List(ctx context.Context, filter attendance.Filter, page api.PageParams) (api.Page[attendance.Record], error)
	ListByClass(ctx context.Context, classID int, date string) ([]attendance.Record, error)
	ListByEnrollment(ctx context.Context, enrollmentID int) ([]attendance.Record, error)
	Check(ctx context.Context, classID int) (attendance.RegistrationCheck, error)
	Create(ctx context.Context, draft attendance.Draft) (attendance.Record, error)
	Delete(ctx context.Context, id int) error
}
