package classes

import (
	"context"

	"academia/internal/adapters/api"
	"academia/internal/domain/class"
	"academia/internal/domain/person"
)

// Service maps class-page intents onto /Clases. The list endpoint is
// paginated; Roster returns the students enrolled in one class, already
// deduplicated.
type Service interface {
	List(ctx context.Context, page api.PageParams) (api.Page[class.Class], error)
	Get(ctx context.Context, id int) (class.Class, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]class.Class, error)
	Roster(ctx context.Context, classID int) ([]person.Person, error)
	Stats(ctx context.Context) (class.Stats, error)
	Create(ctx context.Context, draft class.Draft) (class.Class, error)
	Update(ctx context.Context, id int, update class.Update) (class.Class, error)
	Delete(ctx context.Context, id int) error
}
