package class

import (
	"errors"
	"strings"

	"academia/internal/domain/dancestyle"
	"academia/internal/domain/person"
)

// Weekdays in the backend's wording, Monday first.
var Weekdays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// Class is a scheduled class session as served by /Clases.
// Enrollment counters are computed server-side; read-only here.
type Class struct {
	ID              int              `json:"idClase"`
	Name            string           `json:"nombreClase,omitempty"`
	Weekday         string           `json:"diaSemana,omitempty"`
	StartTime       string           `json:"hora"`
	DurationMinutes int              `json:"duracionMinutos"`
	Capacity        int              `json:"capacidadMax"`
	MonthlyPrice    float64          `json:"precioMensuClas"`
	Active          bool             `json:"activa"`
	Teacher         *person.Ref      `json:"profesor,omitempty"`
	Style           *dancestyle.Style `json:"estiloDanza,omitempty"`
	EnrolledCount   int              `json:"estudiantesInscritos,omitempty"`
	AvailableSlots  int              `json:"cuposDisponibles,omitempty"`
	HasSlots        bool             `json:"tieneCuposDisponibles,omitempty"`
}

// Ref is the short class shape embedded in other entities.
type Ref struct {
	ID        int    `json:"idClase"`
	Name      string `json:"nombreClase,omitempty"`
	Weekday   string `json:"diaSemana,omitempty"`
	StartTime string `json:"hora"`
}

// Label renders the select-option label used across pages:
// "<name> - <weekday> <time>".
func (c Class) Label() string {
	name := c.Name
	if name == "" {
		name = "Clase"
	}
	return name + " - " + c.Weekday + " " + c.StartTime
}

// Draft is the create payload for /Clases.
type Draft struct {
	Name            string  `json:"nombreClase" validate:"required,min=1,max=100"`
	Weekday         string  `json:"diaSemana" validate:"required"`
	StartTime       string  `json:"hora" validate:"required"`
	DurationMinutes int     `json:"duracionMinutos" validate:"required,min=30,max=180"`
	Capacity        int     `json:"capacidadMax" validate:"required,min=1,max=50"`
	MonthlyPrice    float64 `json:"precioMensuClas" validate:"required,min=0.01,max=999999.99"`
	TeacherID       int     `json:"idProfesor" validate:"required"`
	StyleID         int     `json:"idEstilo" validate:"required"`
}

// Update is the edit payload for /Clases/{id}.
type Update struct {
	Name            string  `json:"nombreClase"`
	Weekday         string  `json:"diaSemana"`
	StartTime       string  `json:"hora"`
	DurationMinutes int     `json:"duracionMinutos"`
	Capacity        int     `json:"capacidadMax"`
	MonthlyPrice    float64 `json:"precioMensuClas"`
	TeacherID       int     `json:"idProfesor"`
	StyleID         int     `json:"idEstilo"`
	Active          bool    `json:"activa"`
}

// NormalizeTime widens "HH:mm" to the backend's TimeSpan form "HH:mm:ss".
// Values already carrying seconds pass through unchanged.
func NormalizeTime(hora string) string {
	if strings.Count(hora, ":") == 1 {
		return hora + ":00"
	}
	return hora
}

// ValidWeekday reports whether the backend recognises the weekday string.
func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks the Draft before it is sent to the backend.
// POST: Returns error if validation fails, nil otherwise
func (d Draft) Validate() error {
	if d.Name == "" {
		return errors.New("el nombre de la clase es obligatorio")
	}
	if !ValidWeekday(d.Weekday) {
		return errors.New("día de la semana no reconocido")
	}
	if d.StartTime == "" {
		return errors.New("la hora es obligatoria")
	}
	if d.TeacherID == 0 || d.StyleID == 0 {
		return errors.New("la clase necesita profesor y estilo")
	}
	return nil
}

// StyleStats is the per-style slice of the class statistics.
type StyleStats struct {
	StyleID       int `json:"idEstilo"`
	ClassCount    int `json:"cantidadClases"`
	EnrolledCount int `json:"estudiantesInscritos"`
}

// Stats is the aggregate served by /Clases/estadisticas.
type Stats struct {
	TotalClasses     int          `json:"totalClases"`
	ActiveClasses    int          `json:"clasesActivas"`
	TotalStudents    int          `json:"totalEstudiantes"`
	TotalCapacity    int          `json:"capacidadTotal"`
	AvailableSlots   int          `json:"cuposDisponibles"`
	OccupancyPercent float64      `json:"porcentajeOcupacion"`
	ByStyle          []StyleStats `json:"clasesPorEstilo"`
}

// ActiveOnly filters a class list down to active sessions, preserving order.
func ActiveOnly(classes []Class) []Class {
	out := make([]Class, 0, len(classes))
	for _, c := range classes {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}
