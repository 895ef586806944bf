package enrollment

import (
	"strconv"

	"academia/internal/domain/class"
	"academia/internal/domain/person"
)

// Enrollment states as the backend reports them.
const (
	StateActive    = "activa"
	StateInactive  = "inactiva"
	StateSuspended = "suspendida"
	StateCancelled = "cancelada"
)

// States lists the filterable enrollment states.
var States = []string{StateActive, StateInactive, StateSuspended, StateCancelled}

// Enrollment links a student to a class session (/Inscripciones).
type Enrollment struct {
	ID        int         `json:"idInsc"`
	Date      string      `json:"fechaInsc"`
	State     string      `json:"estado,omitempty"`
	EndDate   string      `json:"fechaBaja,omitempty"`
	EndReason string      `json:"motivoBaja,omitempty"`
	Student   *person.Ref `json:"estudiante,omitempty"`
	Class     *class.Ref  `json:"clase,omitempty"`
}

// Label renders the filter-option label "#<id> - <student> - <class>".
func (e Enrollment) Label() string {
	student := "Estudiante"
	if e.Student != nil {
		student = e.Student.DisplayName()
	}
	className := "Clase"
	if e.Class != nil && e.Class.Name != "" {
		className = e.Class.Name
	}
	return "#" + strconv.Itoa(e.ID) + " - " + student + " - " + className
}

// Draft is the create payload for /Inscripciones.
type Draft struct {
	Date      string `json:"fechaInsc,omitempty"`
	State     string `json:"estado,omitempty" validate:"omitempty,oneof=activa inactiva suspendida cancelada"`
	StudentID int    `json:"idEstudiante" validate:"required"`
	ClassID   int    `json:"idClase" validate:"required"`
}

// Update is the edit payload for /Inscripciones/{id}.
type Update struct {
	Date      string `json:"fechaInsc,omitempty"`
	State     string `json:"estado,omitempty"`
	EndDate   string `json:"fechaBaja,omitempty"`
	EndReason string `json:"motivoBaja,omitempty"`
}
