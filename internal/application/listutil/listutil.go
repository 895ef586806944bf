// Package listutil carries the pagination and filter plumbing shared by
// the listing pages. Most list endpoints are paginated by the backend;
// the few that arrive whole (per-teacher classes, class rosters) are
// windowed here.
package listutil

import (
	"net/url"
	"strconv"
)

// PageParams carries pagination parameters parsed from a request, in the
// backend's page/pageSize vocabulary.
type PageParams struct {
	Page     int // 1-indexed page number
	PageSize int // rows per page
}

// FilterParams carries search and filter parameters.
type FilterParams struct {
	Search  string            // free-text search query
	Filters map[string]string // exact-match filters (e.g. estado=activa)
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PageSize   int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PageSize)
}

// DefaultPageSize is the default number of rows per page.
const DefaultPageSize = 10

// PageSizeOptions are the allowed rows-per-page values.
var PageSizeOptions = []int{5, 10, 25, 50, 100}

// ParsePageParams extracts page and pageSize from URL query values.
// POST: returns valid PageParams with defaults applied
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if !isValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return PageParams{Page: page, PageSize: pageSize}
}

// ParseFilterParams extracts search and named filters from URL query values.
// PRE: filterKeys lists the allowed filter parameter names
// POST: returns FilterParams with only recognised keys
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  q.Get("q"),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// Values renders the filter back into query values, for links that must
// preserve the active filters across page changes.
func (fp FilterParams) Values() url.Values {
	q := url.Values{}
	if fp.Search != "" {
		q.Set("q", fp.Search)
	}
	for key, value := range fp.Filters {
		q.Set(key, value)
	}
	return q
}

// NewPageInfo computes pagination metadata for a locally windowed list.
// PRE: total >= 0, pageSize > 0, page >= 1
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, pageSize, total int) PageInfo {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// RemotePageInfo builds PageInfo from backend-reported metadata, trusting
// the backend's totals rather than recomputing them.
func RemotePageInfo(page, pageSize, total, totalPages int) PageInfo {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return PageInfo{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// StartRow returns the 1-indexed first row number on the current page.
// POST: Returns 0 if Total is 0, otherwise Offset+1
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the current page.
// POST: Returns min(Offset+PageSize, Total)
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PageSize
	if end > p.Total {
		end = p.Total
	}
	return end
}

// HasNext reports whether a later page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// HasPrevious reports whether an earlier page exists.
func (p PageInfo) HasPrevious() bool { return p.Page > 1 }

// PageNumbers returns the page numbers to display in pagination controls.
// Shows at most 5 pages centered around the current page.
// POST: Returns slice of at most 5 page numbers centered on current page
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination returns true if pagination controls should be displayed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PageSize
}

// Window cuts the current page out of a locally held list.
// POST: Returns the rows belonging to p.Page; empty past the end
func Window[T any](items []T, p PageInfo) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func isValidPageSize(n int) bool {
	for _, opt := range PageSizeOptions {
		if n == opt {
			return true
		}
	}
	return false
}
