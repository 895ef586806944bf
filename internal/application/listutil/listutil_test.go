package listutil

import (
	"net/url"
	"testing"
)

// TestParsePageParams_Defaults verifies default page params when no query values provided.
func TestParsePageParams_Defaults(t *testing.T) {
	q := url.Values{}
	p := ParsePageParams(q)
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected pageSize %d, got %d", DefaultPageSize, p.PageSize)
	}
}

// TestParsePageParams_Valid verifies correct parsing of valid page and pageSize values.
func TestParsePageParams_Valid(t *testing.T) {
	q := url.Values{"page": {"3"}, "pageSize": {"50"}}
	p := ParsePageParams(q)
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.PageSize != 50 {
		t.Errorf("expected pageSize 50, got %d", p.PageSize)
	}
}

// TestParsePageParams_InvalidPageSize verifies fallback to default for a size
// outside the allowed options.
func TestParsePageParams_InvalidPageSize(t *testing.T) {
	q := url.Values{"pageSize": {"37"}}
	p := ParsePageParams(q)
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected default pageSize %d for invalid value, got %d", DefaultPageSize, p.PageSize)
	}
}

// TestParsePageParams_NegativePage verifies page is clamped to 1 for negative input.
func TestParsePageParams_NegativePage(t *testing.T) {
	q := url.Values{"page": {"-1"}}
	p := ParsePageParams(q)
	if p.Page != 1 {
		t.Errorf("expected page 1 for negative input, got %d", p.Page)
	}
}

// TestParseFilterParams verifies search and filter extraction from query values.
func TestParseFilterParams(t *testing.T) {
	q := url.Values{"q": {"garcia"}, "estadoCobro": {"pagado"}, "unknown": {"x"}}
	f := ParseFilterParams(q, []string{"estadoCobro", "mesCorrespondiente"})
	if f.Search != "garcia" {
		t.Errorf("expected search=garcia, got %s", f.Search)
	}
	if f.Filters["estadoCobro"] != "pagado" {
		t.Errorf("expected estadoCobro=pagado, got %s", f.Filters["estadoCobro"])
	}
	if _, ok := f.Filters["unknown"]; ok {
		t.Error("unexpected filter key 'unknown'")
	}
}

// TestFilterParamsValues verifies the round trip back into query values.
func TestFilterParamsValues(t *testing.T) {
	f := FilterParams{Search: "ana", Filters: map[string]string{"idClase": "4"}}
	q := f.Values()
	if q.Get("q") != "ana" {
		t.Errorf("expected q=ana, got %s", q.Get("q"))
	}
	if q.Get("idClase") != "4" {
		t.Errorf("expected idClase=4, got %s", q.Get("idClase"))
	}
}

// TestNewPageInfo verifies pagination metadata computation.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		total      int
		wantPages  int
		wantPage   int
		wantStart  int
		wantEnd    int
		wantOffset int
	}{
		{"basic", 1, 20, 85, 5, 1, 1, 20, 0},
		{"page2", 2, 20, 85, 5, 2, 21, 40, 20},
		{"lastPage", 5, 20, 85, 5, 5, 81, 85, 80},
		{"pageBeyondTotal", 10, 20, 85, 5, 5, 81, 85, 80},
		{"emptyList", 1, 20, 0, 1, 1, 0, 0, 0},
		{"exactFit", 1, 10, 10, 1, 1, 1, 10, 0},
		{"singleRow", 1, 20, 1, 1, 1, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, tt.pageSize, tt.total)
			if pi.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: got %d, want %d", pi.TotalPages, tt.wantPages)
			}
			if pi.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", pi.Page, tt.wantPage)
			}
			if pi.StartRow() != tt.wantStart {
				t.Errorf("StartRow: got %d, want %d", pi.StartRow(), tt.wantStart)
			}
			if pi.EndRow() != tt.wantEnd {
				t.Errorf("EndRow: got %d, want %d", pi.EndRow(), tt.wantEnd)
			}
			if pi.Offset() != tt.wantOffset {
				t.Errorf("Offset: got %d, want %d", pi.Offset(), tt.wantOffset)
			}
		})
	}
}

// TestRemotePageInfo verifies backend-reported metadata is trusted as is.
func TestRemotePageInfo(t *testing.T) {
	pi := RemotePageInfo(2, 10, 45, 5)
	if pi.Page != 2 || pi.PageSize != 10 || pi.Total != 45 || pi.TotalPages != 5 {
		t.Errorf("unexpected PageInfo: %+v", pi)
	}
	// Degenerate backend values are normalised, not rejected.
	pi = RemotePageInfo(0, 0, 0, 0)
	if pi.Page != 1 || pi.PageSize != DefaultPageSize || pi.TotalPages != 1 {
		t.Errorf("unexpected normalised PageInfo: %+v", pi)
	}
}

// TestPageNumbers verifies page number window generation.
func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name string
		page int
		tot  int
		want []int
	}{
		{"3pages_at1", 1, 3, []int{1, 2, 3}},
		{"10pages_at1", 1, 10, []int{1, 2, 3, 4, 5}},
		{"10pages_at5", 5, 10, []int{3, 4, 5, 6, 7}},
		{"10pages_at10", 10, 10, []int{6, 7, 8, 9, 10}},
		{"1page", 1, 1, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, 20, tt.tot*20)
			got := pi.PageNumbers()
			if len(got) != len(tt.want) {
				t.Fatalf("PageNumbers length: got %d, want %d", len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("PageNumbers[%d]: got %d, want %d", i, v, tt.want[i])
				}
			}
		})
	}
}

// TestShowPagination verifies pagination visibility logic.
func TestShowPagination(t *testing.T) {
	if NewPageInfo(1, 20, 20).ShowPagination() {
		t.Error("should not show pagination when total == pageSize")
	}
	if !NewPageInfo(1, 20, 21).ShowPagination() {
		t.Error("should show pagination when total > pageSize")
	}
}

// TestWindow verifies local page slicing.
func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	got := Window(items, NewPageInfo(2, 3, len(items)))
	if len(got) != 3 || got[0] != 4 || got[2] != 6 {
		t.Errorf("unexpected window: %v", got)
	}
	got = Window(items, NewPageInfo(3, 3, len(items)))
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("unexpected last window: %v", got)
	}
	got = Window(items, PageInfo{Page: 9, PageSize: 3})
	if len(got) != 0 {
		t.Errorf("expected empty window past the end, got %v", got)
	}
}
