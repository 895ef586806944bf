package people

import (
	"context"

	"academia/internal/adapters/api"
	"academia/internal/domain/person"
)

// Service maps people-page intents onto /Personas.
type Service interface {
	List(ctx context.Context, page api.PageParams) (api.Page[person.Person], error)
	Get(ctx context.Context, id int) (person.Person, error)
	ListTeachers(ctx context.Context) ([]person.Person, error)
	ListStudents(ctx context.Context) ([]person.Person, error)
	Create(ctx context.Context, draft person.Draft) (person.Person, error)
	Update(ctx context.Context, id int, update person.Update) (person.Person, error)
	Delete(ctx context.Context, id int) error
}
