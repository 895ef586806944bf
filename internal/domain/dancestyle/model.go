package dancestyle

import "errors"

// Difficulty levels offered by the backend.
var DifficultyLevels = []string{"Principiante", "Intermedio", "Avanzado"}

// Style is a dance style as served by /EstilosDanza.
type Style struct {
	ID          int     `json:"idEstilo"`
	Name        string  `json:"nombreEsti"`
	Description string  `json:"descripcion,omitempty"`
	Difficulty  string  `json:"nivelDificultad"`
	MinAge      int     `json:"edadMinima,omitempty"`
	MaxAge      int     `json:"edadMaxima,omitempty"`
	Active      bool    `json:"activo"`
	BasePrice   float64 `json:"precioBase,omitempty"`
}

// Draft is the create/update payload for /EstilosDanza.
type Draft struct {
	Name        string  `json:"nombreEsti" validate:"required,min=1,max=100"`
	Description string  `json:"descripcion,omitempty"`
	Difficulty  string  `json:"nivelDificultad,omitempty" validate:"omitempty,oneof=Principiante Intermedio Avanzado"`
	MinAge      int     `json:"edadMinima,omitempty" validate:"omitempty,min=3,max=100"`
	MaxAge      int     `json:"edadMaxima,omitempty" validate:"omitempty,min=3,max=100"`
	Active      bool    `json:"activo"`
	BasePrice   float64 `json:"precioBase,omitempty" validate:"omitempty,min=0.01,max=999999.99"`
}

// Validate checks the Draft before it is sent to the backend.
// INVARIANT: MinAge never exceeds MaxAge when both are set
func (d Draft) Validate() error {
	if d.Name == "" {
		return errors.New("el nombre del estilo es obligatorio")
	}
	if d.MinAge > 0 && d.MaxAge > 0 && d.MinAge > d.MaxAge {
		return errors.New("la edad mínima no puede superar la máxima")
	}
	return nil
}
