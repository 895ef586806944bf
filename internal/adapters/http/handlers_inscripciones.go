package web

import (
	"net/http"
	"strconv"

	"academia/internal/adapters/api"
	"academia/internal/application/listutil"
	"academia/internal/domain/enrollment"
)

// handleEnrollments handles GET (list) and POST (create/update) for
// /inscripciones.
func handleEnrollments(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		q := r.URL.Query()
		classID, _ := strconv.Atoi(q.Get("idClase"))
		pp := listutil.ParsePageParams(q)

		var list []enrollment.Enrollment
		var info listutil.PageInfo
		if classID > 0 {
			// The per-class endpoint returns the roster whole.
			byClass, err := services.Enrollments.ListByClass(r.Context(), classID)
			if err != nil {
				failBack(w, r, s, err, "/")
				return
			}
			info = listutil.NewPageInfo(pp.Page, pp.PageSize, len(byClass))
			list = listutil.Window(byClass, info)
		} else {
			page, err := services.Enrollments.List(r.Context(), api.PageParams{Page: pp.Page, PageSize: pp.PageSize})
			if err != nil {
				failBack(w, r, s, err, "/")
				return
			}
			info = listutil.RemotePageInfo(page.Page, page.PageSize, page.TotalRecords, page.TotalPages)
			list = page.Data
		}

		// State filter applied locally within the page; the backend has
		// no estado param on the list endpoint.
		if state := q.Get("estado"); state != "" {
			filtered := make([]enrollment.Enrollment, 0, len(list))
			for _, e := range list {
				if e.State == state {
					filtered = append(filtered, e)
				}
			}
			list = filtered
		}

		students, err := services.People.ListStudents(r.Context())
		if err != nil {
			students = nil
		}
		classList, err := allClasses(r.Context())
		if err != nil {
			classList = nil
		}

		filters := listutil.ParseFilterParams(q, []string{"idClase", "estado"})

		renderTemplate(w, r, "inscripciones.html", map[string]any{
			"Enrollments": list,
			"PageInfo":    info,
			"Students":    students,
			"Classes":     classList,
			"States":      enrollment.States,
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

		if id > 0 {
			update := enrollment.Update{
				Date:      r.FormValue("Date"),
				State:     r.FormValue("State"),
				EndDate:   r.FormValue("EndDate"),
				EndReason: r.FormValue("EndReason"),
			}
			if _, err := services.Enrollments.Update(r.Context(), id, update); err != nil {
				failBack(w, r, s, err, "/inscripciones")
				return
			}
			setFlash(w, "success", "Inscripción actualizada")
		} else {
			studentID, _ := strconv.Atoi(r.FormValue("StudentID"))
			classID, _ := strconv.Atoi(r.FormValue("ClassID"))
			draft := enrollment.Draft{
				Date:      r.FormValue("Date"),
				State:     r.FormValue("State"),
				StudentID: studentID,
				ClassID:   classID,
			}
			if err := validate.Struct(draft); err != nil {
				failBack(w, r, s, err, "/inscripciones")
				return
			}
			if _, err := services.Enrollments.Create(r.Context(), draft); err != nil {
				failBack(w, r, s, err, "/inscripciones")
				return
			}
			setFlash(w, "success", "Inscripción registrada")
		}
		http.Redirect(w, r, "/inscripciones", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleEnrollmentDelete handles POST /inscripciones/eliminar.
func handleEnrollmentDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := services.Enrollments.Delete(r.Context(), id); err != nil {
		failBack(w, r, s, err, "/inscripciones")
		return
	}
	setFlash(w, "success", "Inscripción eliminada")
	http.Redirect(w, r, "/inscripciones", http.StatusSeeOther)
}
