package api

// DefaultPageSize mirrors the backend's default page size.
const DefaultPageSize = 10

// MaxPageSize is the largest page the backend accepts.
const MaxPageSize = 100

// PageParams carries the backend's pagination query parameters.
type PageParams struct {
	Page     int
	PageSize int
}

// Normalize applies the backend defaults to unset or out-of-range values.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Values returns the page/pageSize query values.
func (p PageParams) Values() map[string]any {
	p = p.Normalize()
	return map[string]any{"page": p.Page, "pageSize": p.PageSize}
}

// Page is the backend's paginated response shape.
type Page[T any] struct {
	Data            []T  `json:"data"`
	TotalRecords    int  `json:"totalRecords"`
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}
