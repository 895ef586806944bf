package attendance

import (
	"errors"
	"fmt"

	"academia/internal/domain/class"
	"academia/internal/domain/person"
)

// Attendance statuses as the backend reports them. The status field is free
// text on the wire; these are the values the console writes and filters on.
const (
	StatusPresent   = "Presente"
	StatusAbsent    = "Ausente"
	StatusLate      = "Tardanza"
	StatusJustified = "Justificado"
)

// Statuses lists the filterable attendance statuses.
var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusJustified}

// Record is one persisted attendance row (/Asistencias).
// The backend expects at most one record per (student, class, date); the
// save workflow enforces it with replace-not-merge semantics.
type Record struct {
	ID      int         `json:"idAsist"`
	Date    string      `json:"fechaAsis"`
	Status  string      `json:"estadoAsis,omitempty"`
	Notes   string      `json:"observaciones,omitempty"`
	Student *person.Ref `json:"estudiante,omitempty"`
	Class   *class.Ref  `json:"clase,omitempty"`
}

// Present reports whether the record marks the student as present.
func (r Record) Present() bool { return r.Status == StatusPresent }

// Draft is the create payload for /Asistencias.
type Draft struct {
	Date      string `json:"fechaAsis"`
	Status    string `json:"estadoAsis,omitempty"`
	Notes     string `json:"observaciones,omitempty"`
	StudentID int    `json:"idEstudiante"`
	ClassID   int    `json:"idClase"`
}

// Validate checks the Draft before it is sent to the backend.
// INVARIANT: every record carries a student, a class and a date
func (d Draft) Validate() error {
	if d.StudentID == 0 {
		return errors.New("la asistencia necesita un estudiante")
	}
	if d.ClassID == 0 {
		return errors.New("la asistencia necesita una clase")
	}
	if d.Date == "" {
		return errors.New("la asistencia necesita una fecha")
	}
	return nil
}

// Filter carries the /Asistencias query filters. Zero values are omitted
// from the request.
type Filter struct {
	StartDate    string // fechaInicio (YYYY-MM-DD)
	EndDate      string // fechaFin
	EnrollmentID int    // idInscripcion
	StudentID    int    // idEstudiante
	ClassID      int    // idClase
	Status       string // estadoAsis
}

// RegistrationCheck is the server-computed gate for registering attendance
// on a class "today". The console renders and obeys it; it never computes it.
type RegistrationCheck struct {
	Allowed         bool   `json:"puedeRegistrar"`
	Message         string `json:"mensaje"`
	ClassWeekday    string `json:"diaSemanaClase"`
	Today           string `json:"diaActual"`
	AlreadyThisWeek bool   `json:"yaRegistradaEstaSemana"`
	LastDate        string `json:"fechaUltimaAsistencia,omitempty"`
	NextDate        string `json:"proximaFechaDisponible,omitempty"`
}

// BlockedMessage renders the day-mismatch toast text shown when the gate
// refuses registration.
func (c RegistrationCheck) BlockedMessage() string {
	return fmt.Sprintf("No se puede registrar asistencia. Hoy es %s y la clase es los dias %s", c.Today, c.ClassWeekday)
}

// DedupeRoster removes duplicate students by id, keeping the first
// occurrence. The backend can return a student twice when several
// enrollment rows point at the same person.
func DedupeRoster(students []person.Person) []person.Person {
	seen := make(map[int]bool, len(students))
	out := make([]person.Person, 0, len(students))
	for _, s := range students {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}
