package person

import "errors"

// Roles as the backend reports them.
const (
	RoleAdmin    = "administrador"
	RoleTeacher  = "profesor"
	RoleStudent  = "estudiante"
	RoleGuardian = "representante"
)

// Person is the unified people record (students, teachers, admins, guardians).
// JSON tags follow the backend's PersonaDto field names.
type Person struct {
	ID           int     `json:"idPersona"`
	FirstName    string  `json:"nombre"`
	LastName     string  `json:"apellido"`
	Phone        string  `json:"telefono,omitempty"`
	Email        string  `json:"correo,omitempty"`
	Role         string  `json:"rol"`
	BirthDate    string  `json:"fechaNacimiento,omitempty"`
	Gender       string  `json:"genero,omitempty"`
	Address      string  `json:"direccion,omitempty"`
	NationalID   string  `json:"cedula,omitempty"`
	MedicalNotes string  `json:"condicionesMedicas,omitempty"`
	Active       bool    `json:"activo"`
	FullName     string  `json:"nombreCompleto"`

	// Teacher-only fields.
	Specialty  string  `json:"especialidad,omitempty"`
	HireDate   string  `json:"fechaContrato,omitempty"`
	BaseSalary float64 `json:"salarioBase,omitempty"`

	// Guardian-only fields.
	Relationship         string `json:"parentesco,omitempty"`
	RepresentedStudentID int    `json:"idEstudianteRepresentado,omitempty"`
	RepresentedStudent   string `json:"nombreEstudianteRepresentado,omitempty"`
}

// Ref is the short person shape embedded in other entities.
type Ref struct {
	ID        int    `json:"idPersona"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	FullName  string `json:"nombreCompleto"`
	Role      string `json:"rol"`
}

// DisplayName returns the backend-computed full name, falling back to
// first+last when the backend omitted it.
func (r Ref) DisplayName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.FirstName + " " + r.LastName
}

// DisplayName returns the full name for table rendering.
func (p Person) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.FirstName + " " + p.LastName
}

// IsStudent reports whether the person holds the student role.
func (p Person) IsStudent() bool { return p.Role == RoleStudent }

// IsTeacher reports whether the person holds the teacher role.
func (p Person) IsTeacher() bool { return p.Role == RoleTeacher }

// Draft is the create payload for /Personas.
type Draft struct {
	FirstName    string  `json:"nombre" validate:"required,min=1,max=100"`
	LastName     string  `json:"apellido" validate:"required,min=1,max=100"`
	Phone        string  `json:"telefono,omitempty" validate:"omitempty,min=8,max=15"`
	Email        string  `json:"correo,omitempty" validate:"omitempty,email"`
	Role         string  `json:"rol" validate:"required,oneof=administrador profesor estudiante representante"`
	Password     string  `json:"contrasena,omitempty" validate:"omitempty,min=6,max=100"`
	BirthDate    string  `json:"fechaNacimiento,omitempty"`
	Gender       string  `json:"genero,omitempty" validate:"omitempty,oneof=M F O"`
	Address      string  `json:"direccion,omitempty"`
	NationalID   string  `json:"cedula,omitempty"`
	MedicalNotes string  `json:"condicionesMedicas,omitempty"`
	Specialty    string  `json:"especialidad,omitempty"`
	HireDate     string  `json:"fechaContrato,omitempty"`
	BaseSalary   float64 `json:"salarioBase,omitempty"`
	Relationship string  `json:"parentesco,omitempty"`

	RepresentedStudentID int `json:"idEstudianteRepresentado,omitempty"`
}

// Update is the edit payload for /Personas/{id}. Active may be flipped here;
// everything else mirrors Draft.
type Update struct {
	FirstName    string  `json:"nombre,omitempty"`
	LastName     string  `json:"apellido,omitempty"`
	Phone        string  `json:"telefono,omitempty"`
	Email        string  `json:"correo,omitempty"`
	Role         string  `json:"rol,omitempty"`
	BirthDate    string  `json:"fechaNacimiento,omitempty"`
	Gender       string  `json:"genero,omitempty"`
	Address      string  `json:"direccion,omitempty"`
	NationalID   string  `json:"cedula,omitempty"`
	MedicalNotes string  `json:"condicionesMedicas,omitempty"`
	Specialty    string  `json:"especialidad,omitempty"`
	HireDate     string  `json:"fechaContrato,omitempty"`
	BaseSalary   float64 `json:"salarioBase,omitempty"`
	Relationship string  `json:"parentesco,omitempty"`
	Active       *bool   `json:"activo,omitempty"`

	RepresentedStudentID int `json:"idEstudianteRepresentado,omitempty"`
}

// ValidRole reports whether the backend recognises the role string.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleGuardian:
		return true
	}
	return false
}

// Validate checks the Draft before it is sent to the backend.
// POST: Returns error if validation fails, nil otherwise
func (d Draft) Validate() error {
	if d.FirstName == "" || d.LastName == "" {
		return errors.New("nombre y apellido son obligatorios")
	}
	if !ValidRole(d.Role) {
		return errors.New("rol no reconocido")
	}
	if d.Role == RoleGuardian && d.RepresentedStudentID == 0 {
		return errors.New("un representante necesita un estudiante representado")
	}
	return nil
}
