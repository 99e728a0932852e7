// Package apierror escribe el sobre JSON de error que comparten todas las rutas.
package apierror

import (
	"encoding/json"
	"net/http"
)

const (
	CodeValidation       = "validation_error"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInternal         = "internal_error"
)

// Response es el body de error. Details se omite si está vacío.
type Response struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Path    string `json:"path"`
}

func Write(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Error:   code,
		Message: message,
		Details: details,
		Path:    r.URL.Path,
	})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	Write(w, r, http.StatusNotFound, CodeNotFound, "resource not found", nil)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Write(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method "+r.Method+" not allowed", nil)
}

// Internal nunca expone al cliente el error subyacente.
func Internal(w http.ResponseWriter, r *http.Request) {
	Write(w, r, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred. Please try again later.", nil)
}
