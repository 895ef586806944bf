package audit

import "encoding/json"

// Entry is one backend audit-trail row (/Audit). The trail itself is
// written server-side; the console is a read-only viewer.
type Entry struct {
	ID             int             `json:"idAudit"`
	Table          string          `json:"tablaAfectada"`
	Operation      string          `json:"tipoOperacion"`
	RecordID       string          `json:"idRegistro,omitempty"`
	Before         json.RawMessage `json:"datosAnteriores,omitempty"`
	After          json.RawMessage `json:"datosNuevos,omitempty"`
	ChangedFields  []string        `json:"camposModificados,omitempty"`
	UserID         int             `json:"idUsuario,omitempty"`
	UserName       string          `json:"nombreUsuario,omitempty"`
	UserRole       string          `json:"rolUsuario,omitempty"`
	IPAddress      string          `json:"ipAddress,omitempty"`
	Endpoint       string          `json:"endpoint,omitempty"`
	HTTPMethod     string          `json:"metodoHttp,omitempty"`
	OccurredAt     string          `json:"fechaOperacion"`
	DurationMillis int             `json:"duracionMs,omitempty"`
	Succeeded      bool            `json:"exitoso"`
	ErrorMessage   string          `json:"mensajeError,omitempty"`
}

// Filter carries the /Audit query filters. The audit endpoint uses its own
// pagination vocabulary (pagina / tamañoPagina) distinct from the rest of
// the API.
type Filter struct {
	Table     string // tablaAfectada
	Operation string // tipoOperacion
	UserID    int    // idUsuario
	Since     string // fechaDesde
	Until     string // fechaHasta
	RecordID  string // idRegistro
	Succeeded *bool  // exitoso
	Page      int    // pagina
	PageSize  int    // tamañoPagina
}

// Page is the audit endpoint's paginated response shape.
type Page struct {
	Logs       []Entry `json:"logs"`
	Total      int     `json:"total"`
	Page       int     `json:"pagina"`
	PageSize   int     `json:"tamañoPagina"`
	TotalPages int     `json:"totalPaginas"`
}

// Summary aggregates trail activity (/Audit/resumen).
type Summary struct {
	TotalOperations   int            `json:"totalOperaciones"`
	TotalInserts      int            `json:"totalInserts"`
	TotalUpdates      int            `json:"totalUpdates"`
	TotalDeletes      int            `json:"totalDeletes"`
	FailedOperations  int            `json:"operacionesFallidas"`
	OperationsByTable map[string]int `json:"operacionesPorTabla"`
	OperationsByUser  map[string]int `json:"operacionesPorUsuario"`
	Latest            []Entry        `json:"ultimasOperaciones"`
}
