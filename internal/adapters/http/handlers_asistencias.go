package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"academia/internal/adapters/api"
	"academia/internal/application/listutil"
	"academia/internal/application/orchestrators"
	"academia/internal/application/registration"
	"academia/internal/domain/attendance"
	"academia/internal/domain/class"
)

// registrationQuery rebuilds the /asistencias query string for the
// current selection so actions can redirect back to it.
func registrationQuery(classID int, date string) string {
	q := url.Values{}
	if classID > 0 {
		q.Set("clase", strconv.Itoa(classID))
	}
	if date != "" {
		q.Set("fecha", date)
	}
	if encoded := q.Encode(); encoded != "" {
		return "/asistencias?" + encoded
	}
	return "/asistencias"
}

// handleAttendanceRegister renders the registration sheet for a class
// and date. Selecting a class or date reloads the sheet from the backend;
// marks made since the last save live only in the registration book.
func handleAttendanceRegister(w http.ResponseWriter, r *http.Request) {
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var classList []class.Class
	var err error
	if s.User.Teacher() && !s.User.Admin() {
		classList, err = services.Classes.ListByTeacher(r.Context(), s.User.PersonID)
	} else {
		classList, err = allClasses(r.Context())
	}
	if err != nil {
		failBack(w, r, s, err, "/")
		return
	}
	classList = class.ActiveOnly(classList)

	classID, _ := strconv.Atoi(r.URL.Query().Get("clase"))
	date := r.URL.Query().Get("fecha")
	if date == "" {
		date = timeNow().Format("2006-01-02")
	}

	data := map[string]any{
		"Classes":      classList,
		"ClassID":      classID,
		"Date":         date,
		"ShowDownload": r.URL.Query().Get("descargar") == "1",
	}

	if classID > 0 {
		result, err := orchestrators.ExecuteLoadRoster(r.Context(), orchestrators.LoadRosterInput{
			SessionID: s.ID,
			ClassID:   classID,
			Date:      date,
		}, orchestrators.LoadRosterDeps{
			Attendance: services.Attendance,
			Classes:    services.Classes,
			Book:       services.Book,
		})
		if err != nil {
			failBack(w, r, s, err, "/asistencias")
			return
		}
		if !result.Stale {
			data["Sheet"] = result.Sheet
			data["Check"] = result.Sheet.Check
			if !result.Sheet.Check.Allowed && result.Sheet.Check.ClassWeekday != "" {
				data["BlockedMessage"] = result.Sheet.Check.BlockedMessage()
			}
		}
	}

	renderTemplate(w, r, "asistencias.html", data)
}

// handleAttendanceToggle flips one student's mark on the open sheet.
// Local-only: the backend is untouched until the sheet is saved.
func handleAttendanceToggle(w http.ResponseWriter, r *http.Request) {
	s, _, ok := sessionAndCtx(r)
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

	studentID, _ := strconv.Atoi(r.FormValue("StudentID"))
	classID, _ := strconv.Atoi(r.FormValue("ClassID"))
	date := r.FormValue("Date")

	if _, err := services.Book.Toggle(s.ID, studentID); err != nil {
		setFlash(w, "error", err.Error())
	} else if notes, present := r.Form["Notes"]; present && len(notes) > 0 {
		_ = services.Book.SetNotes(s.ID, studentID, notes[0])
	}
	http.Redirect(w, r, registrationQuery(classID, date), http.StatusSeeOther)
}

// handleAttendanceSave persists the open sheet.
func handleAttendanceSave(w http.ResponseWriter, r *http.Request) {
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
	classID, _ := strconv.Atoi(r.FormValue("ClassID"))
	date := r.FormValue("Date")

	result, err := orchestrators.ExecuteSaveAttendance(r.Context(), orchestrators.SaveAttendanceInput{
		SessionID: s.ID,
	}, orchestrators.SaveAttendanceDeps{
		Attendance: services.Attendance,
		Book:       services.Book,
	})
	if err != nil {
		var blocked orchestrators.ErrRegistrationBlocked
		switch {
		case errors.As(err, &blocked):
			setFlash(w, "error", blocked.Error())
		case errors.Is(err, registration.ErrNoSheet):
			setFlash(w, "error", "No hay una hoja de asistencia abierta")
		default:
			failBack(w, r, s, err, registrationQuery(classID, date))
			return
		}
		http.Redirect(w, r, registrationQuery(classID, date), http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Asistencia guardada ("+strconv.Itoa(result.Saved)+" registros)")
	// The download prompt for the day's report.
	http.Redirect(w, r, registrationQuery(classID, date)+"&descargar=1", http.StatusSeeOther)
}

// handleAttendanceHistory renders the filtered attendance history.
func handleAttendanceHistory(w http.ResponseWriter, r *http.Request) {
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
	filter := attendance.Filter{
		StartDate: q.Get("fechaInicio"),
		EndDate:   q.Get("fechaFin"),
		Status:    q.Get("estadoAsis"),
	}
	filter.ClassID, _ = strconv.Atoi(q.Get("idClase"))
	filter.StudentID, _ = strconv.Atoi(q.Get("idEstudiante"))
	filter.EnrollmentID, _ = strconv.Atoi(q.Get("idInscripcion"))

	pp := listutil.ParsePageParams(q)
	page, err := services.Attendance.List(r.Context(), filter, api.PageParams{Page: pp.Page, PageSize: pp.PageSize})
	if err != nil {
		failBack(w, r, s, err, "/")
		return
	}

	classList, err := allClasses(r.Context())
	if err != nil {
		classList = nil
	}

	filters := listutil.ParseFilterParams(q,
		[]string{"fechaInicio", "fechaFin", "estadoAsis", "idClase", "idEstudiante", "idInscripcion"})

	renderTemplate(w, r, "asistencias_historial.html", map[string]any{
		"Records":     page.Data,
		"PageInfo":    listutil.RemotePageInfo(page.Page, page.PageSize, page.TotalRecords, page.TotalPages),
		"Classes":     classList,
		"Statuses":    attendance.Statuses,
		"Filters":     filters,
		"FilterQuery": filters.Values(),
	})
}
