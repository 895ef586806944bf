package dancestyles

import (
	"context"

	"academia/internal/adapters/api"
	"academia/internal/domain/dancestyle"
)

// Service maps dance-style intents onto /EstilosDanza. The list endpoint
// is paginated; ListActive returns a bare array for select options.
type Service interface {
	List(ctx context.Context, page api.PageParams) (api.Page[dancestyle.Style], error)
	ListActive(ctx context.Context) ([]dancestyle.Style, error)
	Create(ctx context.Context, draft dancestyle.Draft) (dancestyle.Style, error)
	Update(ctx context.Context, id int, draft dancestyle.Draft) (dancestyle.Style, error)
	Delete(ctx context.Context, id int) error
}
