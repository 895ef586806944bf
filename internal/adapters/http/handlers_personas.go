package web

import (
	"net/http"
	"strconv"
	"strings"

	"academia/internal/adapters/api"
	"academia/internal/application/listutil"
	"academia/internal/domain/person"
)

// handlePeople handles GET (paginated list) and POST (create/update) for
// /personas. Editing posts the same form with an ID field set.
func handlePeople(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		pp := listutil.ParsePageParams(r.URL.Query())
		page, err := services.People.List(r.Context(), api.PageParams{Page: pp.Page, PageSize: pp.PageSize})
		if err != nil {
			failBack(w, r, s, err, "/")
			return
		}

		renderTemplate(w, r, "personas.html", map[string]any{
			"People":   page.Data,
			"PageInfo": listutil.RemotePageInfo(page.Page, page.PageSize, page.TotalRecords, page.TotalPages),
			"Roles":    []string{person.RoleAdmin, person.RoleTeacher, person.RoleStudent, person.RoleGuardian},
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
			update := person.Update{
				FirstName: strings.TrimSpace(r.FormValue("FirstName")),
				LastName:  strings.TrimSpace(r.FormValue("LastName")),
				Email:     strings.TrimSpace(r.FormValue("Email")),
				Phone:     strings.TrimSpace(r.FormValue("Phone")),
				Role:      r.FormValue("Role"),
			}
			if r.FormValue("Active") != "" {
				active := r.FormValue("Active") == "1"
				update.Active = &active
			}
			if _, err := services.People.Update(r.Context(), id, update); err != nil {
				failBack(w, r, s, err, "/personas")
				return
			}
			setFlash(w, "success", "Persona actualizada")
		} else {
			draft := person.Draft{
				FirstName: strings.TrimSpace(r.FormValue("FirstName")),
				LastName:  strings.TrimSpace(r.FormValue("LastName")),
				Email:     strings.TrimSpace(r.FormValue("Email")),
				Phone:     strings.TrimSpace(r.FormValue("Phone")),
				BirthDate: r.FormValue("BirthDate"),
				Role:      r.FormValue("Role"),
			}
			if err := validate.Struct(draft); err != nil {
				failBack(w, r, s, err, "/personas")
				return
			}
			if err := draft.Validate(); err != nil {
				failBack(w, r, s, err, "/personas")
				return
			}
			if _, err := services.People.Create(r.Context(), draft); err != nil {
				failBack(w, r, s, err, "/personas")
				return
			}
			setFlash(w, "success", "Persona registrada")
		}
		http.Redirect(w, r, "/personas", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handlePersonDelete handles POST /personas/eliminar.
func handlePersonDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := services.People.Delete(r.Context(), id); err != nil {
		failBack(w, r, s, err, "/personas")
		return
	}
	setFlash(w, "success", "Persona eliminada")
	http.Redirect(w, r, "/personas", http.StatusSeeOther)
}
