package web

import (
	"io"
	"net/http"

	"academia/internal/application/orchestrators"
)

// reportFilterKeys lists the query parameters forwarded to the backend's
// report endpoints, per entity.
var reportFilterKeys = map[string][]string{
	"Asistencias":   {"fechaInicio", "fechaFin", "idClase", "idEstudiante", "estadoAsis"},
	"Cobros":        {"fechaInicio", "fechaFin", "idEstudiante", "estadoCobro", "tipoCobro", "mesCorrespondiente", "anioCorrespondiente"},
	"Inscripciones": {"fechaInicio", "fechaFin", "idClase", "estado"},
	"Clases":        {"idProfesor", "idEstilo", "activa"},
}

// handleReportDownload streams a backend-rendered report through to the
// browser: GET /reportes?entidad=Asistencias&formato=csv&fechaInicio=...
func handleReportDownload(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	entity := q.Get("entidad")
	format := q.Get("formato")

	filters := map[string]any{}
	for _, key := range reportFilterKeys[entity] {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	report, err := orchestrators.ExecuteDownloadReport(r.Context(), orchestrators.DownloadReportInput{
		Entity:  entity,
		Format:  format,
		Filters: filters,
	}, orchestrators.DownloadReportDeps{Reports: services.Reports})
	if err != nil {
		failBack(w, r, s, err, redirectTarget(r))
		return
	}
	defer report.Body.Close()

	contentType := report.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if format == "pdf" {
		// PDFs open in a new tab, matching how the console links them.
		w.Header().Set("Content-Disposition", "inline; filename=\""+report.Filename+"\"")
	} else {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+report.Filename+"\"")
	}
	if _, err := io.Copy(w, report.Body); err != nil {
		// Too late for an error page; the download just ends short.
		return
	}
}
