package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a backend failure normalized into the console's taxonomy.
// Handlers branch on the predicates below instead of raw status codes.
type Error struct {
	Status  int    // HTTP status from the backend
	Code    string // backend error-detail code, when the envelope carried one
	Message string // user-presentable message
}

func (e *Error) Error() string { return e.Message }

// newError maps a failed response onto an Error with the message fallbacks
// the console has always shown.
func newError(status int, env envelope) *Error {
	apiErr := &Error{Status: status, Message: env.Message, Code: detailCode(env.Errors)}
	if apiErr.Message == "" {
		switch {
		case status == http.StatusUnauthorized:
			apiErr.Message = "Sesión expirada"
		case status == http.StatusForbidden:
			apiErr.Message = "No tienes permisos para realizar esta acción"
		case status == http.StatusNotFound:
			apiErr.Message = "Recurso no encontrado"
		case status >= 500:
			apiErr.Message = "Error interno del servidor"
		default:
			apiErr.Message = fmt.Sprintf("Error en la petición (%d)", status)
		}
	}
	return apiErr
}

// detailCode pulls a machine-readable code out of the envelope's errors
// field. The backend ships either {"code": "..."} or a bare string.
func detailCode(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var withCode struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &withCode); err == nil && withCode.Code != "" {
		return withCode.Code
	}
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return ""
}

// IsUnauthorized reports whether err is a 401. The caller must force
// logout and redirect to login.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsForbidden reports whether err is a 403.
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsConflict reports whether err is a 409, e.g. deleting a dance style
// that still has classes attached.
func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

// IsValidation reports whether err is a 400.
func IsValidation(err error) bool { return hasStatus(err, http.StatusBadRequest) }

// DetailCode returns the backend error-detail code, if err carries one.
func DetailCode(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
