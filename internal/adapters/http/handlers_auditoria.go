package web

import (
	"net/http"
	"strconv"

	"academia/internal/application/listutil"
	"academia/internal/domain/audit"
)

// handleAudit renders the read-only audit trail viewer. Admin only.
func handleAudit(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !s.User.Admin() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Table:     q.Get("tablaAfectada"),
		Operation: q.Get("tipoOperacion"),
		Since:     q.Get("fechaDesde"),
		Until:     q.Get("fechaHasta"),
		RecordID:  q.Get("idRegistro"),
	}
	filter.UserID, _ = strconv.Atoi(q.Get("idUsuario"))
	if v := q.Get("exitoso"); v != "" {
		succeeded := v == "1"
		filter.Succeeded = &succeeded
	}
	pp := listutil.ParsePageParams(q)
	filter.Page = pp.Page
	filter.PageSize = pp.PageSize

	page, err := services.Audit.Logs(r.Context(), filter)
	if err != nil {
		failBack(w, r, s, err, "/")
		return
	}

	summary, err := services.Audit.Summary(r.Context())
	if err != nil {
		summary = audit.Summary{}
	}
	tables, err := services.Audit.Tables(r.Context())
	if err != nil {
		tables = nil
	}
	operations, err := services.Audit.Operations(r.Context())
	if err != nil {
		operations = nil
	}

	filters := listutil.ParseFilterParams(q, []string{
		"tablaAfectada", "tipoOperacion", "idUsuario", "fechaDesde",
		"fechaHasta", "idRegistro", "exitoso",
	})

	renderTemplate(w, r, "auditoria.html", map[string]any{
		"Logs":        page.Logs,
		"PageInfo":    listutil.RemotePageInfo(page.Page, page.PageSize, page.Total, page.TotalPages),
		"Summary":     summary,
		"Tables":      tables,
		"Operations":  operations,
		"Filters":     filters,
		"FilterQuery": filters.Values(),
	})
}
