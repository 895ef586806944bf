package web

import (
	"net/http"
	"strconv"
	"strings"

	"academia/internal/adapters/api"
	"academia/internal/application/listutil"
	"academia/internal/domain/dancestyle"
)

// handleStyles handles GET (list) and POST (create/update) for
// /estilos-danza. Style descriptions are markdown, rendered in the
// template via goldmark.
func handleStyles(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		pp := listutil.ParsePageParams(r.URL.Query())
		page, err := services.Styles.List(r.Context(), api.PageParams{Page: pp.Page, PageSize: pp.PageSize})
		if err != nil {
			failBack(w, r, s, err, "/")
			return
		}

		renderTemplate(w, r, "estilos.html", map[string]any{
			"Styles":   page.Data,
			"PageInfo": listutil.RemotePageInfo(page.Page, page.PageSize, page.TotalRecords, page.TotalPages),
			"Levels":   dancestyle.DifficultyLevels,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		id, _ := strconv.Atoi(r.FormValue("ID"))
		minAge, _ := strconv.Atoi(r.FormValue("MinAge"))
		maxAge, _ := strconv.Atoi(r.FormValue("MaxAge"))
		basePrice, _ := strconv.ParseFloat(r.FormValue("BasePrice"), 64)

		draft := dancestyle.Draft{
			Name:        strings.TrimSpace(r.FormValue("Name")),
			Description: r.FormValue("Description"),
			Difficulty:  r.FormValue("Difficulty"),
			MinAge:      minAge,
			MaxAge:      maxAge,
			Active:      r.FormValue("Active") == "1",
			BasePrice:   basePrice,
		}
		if err := validate.Struct(draft); err != nil {
			failBack(w, r, s, err, "/estilos-danza")
			return
		}
		if err := draft.Validate(); err != nil {
			failBack(w, r, s, err, "/estilos-danza")
			return
		}

		if id > 0 {
			if _, err := services.Styles.Update(r.Context(), id, draft); err != nil {
				failBack(w, r, s, err, "/estilos-danza")
				return
			}
			setFlash(w, "success", "Estilo actualizado")
		} else {
			if _, err := services.Styles.Create(r.Context(), draft); err != nil {
				failBack(w, r, s, err, "/estilos-danza")
				return
			}
			setFlash(w, "success", "Estilo registrado")
		}
		http.Redirect(w, r, "/estilos-danza", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleStyleDelete handles POST /estilos-danza/eliminar. A backend
// conflict means classes still use the style; the raw error is replaced
// with an explanation.
func handleStyleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := services.Styles.Delete(r.Context(), id); err != nil {
		if api.IsConflict(err) {
			setFlash(w, "error", "No se puede eliminar el estilo: hay clases que todavía lo usan")
			http.Redirect(w, r, "/estilos-danza", http.StatusSeeOther)
			return
		}
		failBack(w, r, s, err, "/estilos-danza")
		return
	}
	setFlash(w, "success", "Estilo eliminado")
	http.Redirect(w, r, "/estilos-danza", http.StatusSeeOther)
}
