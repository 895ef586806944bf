package web

import (
	"net/http"
	"strconv"
	"strings"

	"academia/internal/adapters/api"
	"academia/internal/application/listutil"
	"academia/internal/domain/billing"
)

// billingFilterFromQuery reads the /cobros filter controls.
func billingFilterFromQuery(q map[string][]string) billing.Filter {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	filter := billing.Filter{
		State:     get("estadoCobro"),
		Kind:      get("tipoCobro"),
		Month:     get("mesCorrespondiente"),
		Method:    get("metodoPago"),
		Search:    get("busqueda"),
		StartDate: get("fechaInicio"),
		EndDate:   get("fechaFin"),
	}
	filter.StudentID, _ = strconv.Atoi(get("idEstudiante"))
	filter.Year, _ = strconv.Atoi(get("anioCorrespondiente"))
	return filter
}

// handleBilling handles GET (filtered list) and POST (create/update) for
// /cobros.
func handleBilling(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		q := r.URL.Query()
		filter := billingFilterFromQuery(q)

		pp := listutil.ParsePageParams(q)
		page, err := services.Billing.List(r.Context(), filter, api.PageParams{Page: pp.Page, PageSize: pp.PageSize})
		if err != nil {
			failBack(w, r, s, err, "/")
			return
		}

		students, err := services.People.ListStudents(r.Context())
		if err != nil {
			students = nil
		}

		filters := listutil.ParseFilterParams(q, []string{
			"idEstudiante", "estadoCobro", "tipoCobro", "mesCorrespondiente",
			"anioCorrespondiente", "metodoPago", "busqueda", "fechaInicio", "fechaFin",
		})

		renderTemplate(w, r, "cobros.html", map[string]any{
			"Payments":    page.Data,
			"PageInfo":    listutil.RemotePageInfo(page.Page, page.PageSize, page.TotalRecords, page.TotalPages),
			"Students":    students,
			"States":      billing.States,
			"Methods":     billing.Methods,
			"Months":      billing.Months,
			"Filters":     filters,
			"FilterQuery": filters.Values(),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		id, _ := strconv.Atoi(r.FormValue("ID"))
		amount, _ := strconv.ParseFloat(r.FormValue("Amount"), 64)
		year, _ := strconv.Atoi(r.FormValue("Year"))

		if id > 0 {
			update := billing.Update{
				Amount:  amount,
				PaidAt:  r.FormValue("PaidAt"),
				DueDate: r.FormValue("DueDate"),
				Method:  r.FormValue("Method"),
				Month:   r.FormValue("Month"),
				State:   r.FormValue("State"),
				Notes:   strings.TrimSpace(r.FormValue("Notes")),
				Kind:    r.FormValue("Kind"),
				Year:    year,
			}
			if _, err := services.Billing.Update(r.Context(), id, update); err != nil {
				failBack(w, r, s, err, "/cobros")
				return
			}
			setFlash(w, "success", "Cobro actualizado")
		} else {
			studentID, _ := strconv.Atoi(r.FormValue("StudentID"))
			draft := billing.Draft{
				Amount:    amount,
				PaidAt:    r.FormValue("PaidAt"),
				DueDate:   r.FormValue("DueDate"),
				Method:    r.FormValue("Method"),
				Month:     r.FormValue("Month"),
				State:     r.FormValue("State"),
				Notes:     strings.TrimSpace(r.FormValue("Notes")),
				Kind:      r.FormValue("Kind"),
				Year:      year,
				StudentID: studentID,
			}
			if err := validate.Struct(draft); err != nil {
				failBack(w, r, s, err, "/cobros")
				return
			}
			if err := draft.Validate(); err != nil {
				failBack(w, r, s, err, "/cobros")
				return
			}
			if _, err := services.Billing.Create(r.Context(), draft); err != nil {
				failBack(w, r, s, err, "/cobros")
				return
			}
			setFlash(w, "success", "Cobro registrado")
		}
		http.Redirect(w, r, "/cobros", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handlePaymentDelete handles POST /cobros/eliminar.
func handlePaymentDelete(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.FormValue("ID"))
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := services.Billing.Delete(r.Context(), id); err != nil {
		failBack(w, r, s, err, "/cobros")
		return
	}
	setFlash(w, "success", "Cobro eliminado")
	http.Redirect(w, r, "/cobros", http.StatusSeeOther)
}

// handleBillingSummary renders the all-students paid/unpaid rollup for
// one month, defaulting to the current one.
func handleBillingSummary(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := timeNow()
	month := r.URL.Query().Get("mes")
	if month == "" {
		month = billing.Months[int(now.Month())-1]
	}
	year, _ := strconv.Atoi(r.URL.Query().Get("anio"))
	if year == 0 {
		year = now.Year()
	}

	rows, err := services.Billing.Summary(r.Context(), month, year)
	if err != nil {
		failBack(w, r, s, err, "/cobros")
		return
	}

	paid := 0
	for _, row := range rows {
		if row.PaidMonth {
			paid++
		}
	}

	renderTemplate(w, r, "cobros_resumen.html", map[string]any{
		"Rows":   rows,
		"Month":  month,
		"Year":   year,
		"Months": billing.Months,
		"Paid":   paid,
		"Unpaid": len(rows) - paid,
	})
}

// handleBillingHistory renders one student's payment history plus the
// month-by-month status grid.
func handleBillingHistory(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	studentID, err := strconv.Atoi(r.URL.Query().Get("idEstudiante"))
	if err != nil || studentID <= 0 {
		http.Error(w, "Invalid student id", http.StatusBadRequest)
		return
	}

	pp := listutil.ParsePageParams(r.URL.Query())
	history, err := services.Billing.History(r.Context(), studentID, api.PageParams{Page: pp.Page, PageSize: pp.PageSize})
	if err != nil {
		failBack(w, r, s, err, "/cobros")
		return
	}

	status, err := services.Billing.Status(r.Context(), studentID)
	if err != nil {
		if api.IsUnauthorized(err) {
			forceLogout(w, r, s)
			return
		}
		status = billing.PaymentStatus{StudentID: studentID}
	}

	renderTemplate(w, r, "cobros_historial.html", map[string]any{
		"StudentID": studentID,
		"Status":    status,
		"Payments":  history.Data,
		"PageInfo":  listutil.RemotePageInfo(history.Page, history.PageSize, history.TotalRecords, history.TotalPages),
	})
}
