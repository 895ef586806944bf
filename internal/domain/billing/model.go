package billing

import (
	"errors"

	"academia/internal/domain/person"
)

// Payment states and kinds as the backend reports them.
const (
	StatePending   = "pendiente"
	StatePaid      = "pagado"
	StateOverdue   = "vencido"
	StateCancelled = "cancelado"

	KindMonthly = "mensual"
)

// States lists the filterable payment states.
var States = []string{StatePending, StatePaid, StateOverdue, StateCancelled}

// Methods lists the accepted payment methods.
var Methods = []string{"Efectivo", "Transferencia"}

// Months in the backend's wording, used by the monthly status grid.
var Months = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Payment is one billing row (/Cobros).
type Payment struct {
	ID      int         `json:"idCobro"`
	Amount  float64     `json:"monto"`
	PaidAt  string      `json:"fechaPago,omitempty"`
	DueDate string      `json:"fechaVencimiento,omitempty"`
	Method  string      `json:"metodoPago,omitempty"`
	Month   string      `json:"mesCorrespondiente,omitempty"`
	State   string      `json:"estadoCobro,omitempty"`
	Notes   string      `json:"observaciones,omitempty"`
	Kind    string      `json:"tipoCobro"`
	Year    int         `json:"anioCorrespondiente,omitempty"`
	Student *person.Ref `json:"estudiante,omitempty"`
}

// Draft is the create payload for /Cobros.
type Draft struct {
	Amount    float64 `json:"monto" validate:"required,min=0.01,max=999999.99"`
	PaidAt    string  `json:"fechaPago,omitempty"`
	DueDate   string  `json:"fechaVencimiento,omitempty"`
	Method    string  `json:"metodoPago,omitempty" validate:"omitempty,oneof=Efectivo Transferencia"`
	Month     string  `json:"mesCorrespondiente" validate:"required"`
	State     string  `json:"estadoCobro,omitempty" validate:"omitempty,oneof=pendiente pagado vencido cancelado"`
	Notes     string  `json:"observaciones,omitempty"`
	Kind      string  `json:"tipoCobro" validate:"required"`
	Year      int     `json:"anioCorrespondiente,omitempty"`
	StudentID int     `json:"idEstudiante" validate:"required"`
}

// Update is the edit payload for /Cobros/{id}.
type Update struct {
	Amount  float64 `json:"monto"`
	PaidAt  string  `json:"fechaPago,omitempty"`
	DueDate string  `json:"fechaVencimiento,omitempty"`
	Method  string  `json:"metodoPago,omitempty"`
	Month   string  `json:"mesCorrespondiente,omitempty"`
	State   string  `json:"estadoCobro,omitempty"`
	Notes   string  `json:"observaciones,omitempty"`
	Kind    string  `json:"tipoCobro,omitempty"`
	Year    int     `json:"anioCorrespondiente,omitempty"`
}

// Validate checks the Draft before it is sent to the backend.
func (d Draft) Validate() error {
	if d.StudentID == 0 {
		return errors.New("el cobro necesita un estudiante")
	}
	if d.Amount <= 0 {
		return errors.New("el monto debe ser mayor que cero")
	}
	if d.Month == "" || d.Kind == "" {
		return errors.New("mes y tipo de cobro son obligatorios")
	}
	return nil
}

// Filter carries the /Cobros query filters.
type Filter struct {
	StudentID int    // idEstudiante
	State     string // estadoCobro
	Kind      string // tipoCobro
	Month     string // mesCorrespondiente
	Year      int    // anioCorrespondiente
	Method    string // metodoPago
	Search    string // busqueda
	StartDate string // fechaInicio
	EndDate   string // fechaFin
}

// MonthlyPayment is one cell in a student's payment-status grid.
type MonthlyPayment struct {
	Month  string  `json:"mes"`
	Year   int     `json:"anio"`
	Paid   bool    `json:"pagado"`
	PaidAt string  `json:"fechaPago,omitempty"`
	Amount float64 `json:"monto,omitempty"`
}

// PaymentStatus is a student's month-by-month payment state
// (/Cobros/estado-pago/{id}).
type PaymentStatus struct {
	StudentID int              `json:"idEstudiante"`
	FullName  string           `json:"nombreCompleto"`
	Months    []MonthlyPayment `json:"pagosMensuales"`
}

// SummaryRow is one row of the all-students payment summary
// (/Cobros/resumen-pagos).
type SummaryRow struct {
	StudentID int    `json:"idEstudiante"`
	FullName  string `json:"nombreCompleto"`
	PaidMonth bool   `json:"pagoMes"`
	Kind      string `json:"tipoPago"`
}
