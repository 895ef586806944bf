package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"academia/internal/adapters/api"
	"academia/internal/application/listutil"
	"academia/internal/domain/class"
)

// allClasses fetches every class in one oversized page. Used by pages
// that fill a class selector rather than render the class list itself.
func allClasses(ctx context.Context) ([]class.Class, error) {
	page, err := services.Classes.List(ctx, api.PageParams{Page: 1, PageSize: api.MaxPageSize})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// handleClasses handles GET (list) and POST (create/update) for /clases.
// Teachers only see their own classes; admins see everything.
func handleClasses(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		pp := listutil.ParsePageParams(r.URL.Query())

		var window []class.Class
		var info listutil.PageInfo
		if s.User.Teacher() && !s.User.Admin() {
			// The per-teacher endpoint is not paginated; window locally.
			list, err := services.Classes.ListByTeacher(r.Context(), s.User.PersonID)
			if err != nil {
				failBack(w, r, s, err, "/")
				return
			}
			info = listutil.NewPageInfo(pp.Page, pp.PageSize, len(list))
			window = listutil.Window(list, info)
		} else {
			page, err := services.Classes.List(r.Context(), api.PageParams{Page: pp.Page, PageSize: pp.PageSize})
			if err != nil {
				failBack(w, r, s, err, "/")
				return
			}
			info = listutil.RemotePageInfo(page.Page, page.PageSize, page.TotalRecords, page.TotalPages)
			window = page.Data
		}

		teachers, err := services.People.ListTeachers(r.Context())
		if err != nil {
			teachers = nil
		}
		styles, err := services.Styles.ListActive(r.Context())
		if err != nil {
			styles = nil
		}

		renderTemplate(w, r, "clases.html", map[string]any{
			"Classes":  window,
			"PageInfo": info,
			"Teachers": teachers,
			"Styles":   styles,
			"Weekdays": class.Weekdays,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		id, _ := strconv.Atoi(r.FormValue("ID"))
		duration, _ := strconv.Atoi(r.FormValue("DurationMinutes"))
		capacity, _ := strconv.Atoi(r.FormValue("Capacity"))
		price, _ := strconv.ParseFloat(r.FormValue("MonthlyPrice"), 64)
		teacherID, _ := strconv.Atoi(r.FormValue("TeacherID"))
		styleID, _ := strconv.Atoi(r.FormValue("StyleID"))

		if id > 0 {
			update := class.Update{
				Name:            strings.TrimSpace(r.FormValue("Name")),
				Weekday:         r.FormValue("Weekday"),
				StartTime:       r.FormValue("StartTime"),
				DurationMinutes: duration,
				Capacity:        capacity,
				MonthlyPrice:    price,
				TeacherID:       teacherID,
				StyleID:         styleID,
				Active:          r.FormValue("Active") == "1",
			}
			if _, err := services.Classes.Update(r.Context(), id, update); err != nil {
				failBack(w, r, s, err, "/clases")
				return
			}
			setFlash(w, "success", "Clase actualizada")
		} else {
			draft := class.Draft{
				Name:            strings.TrimSpace(r.FormValue("Name")),
				Weekday:         r.FormValue("Weekday"),
				StartTime:       r.FormValue("StartTime"),
				DurationMinutes: duration,
				Capacity:        capacity,
				MonthlyPrice:    price,
				TeacherID:       teacherID,
				StyleID:         styleID,
			}
			if err := validate.Struct(draft); err != nil {
				failBack(w, r, s, err, "/clases")
				return
			}
			if err := draft.Validate(); err != nil {
				failBack(w, r, s, err, "/clases")
				return
			}
			if _, err := services.Classes.Create(r.Context(), draft); err != nil {
				failBack(w, r, s, err, "/clases")
				return
			}
			setFlash(w, "success", "Clase registrada")
		}
		http.Redirect(w, r, "/clases", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleClassDelete handles POST /clases/eliminar.
func handleClassDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := services.Classes.Delete(r.Context(), id); err != nil {
		failBack(w, r, s, err, "/clases")
		return
	}
	setFlash(w, "success", "Clase eliminada")
	http.Redirect(w, r, "/clases", http.StatusSeeOther)
}
