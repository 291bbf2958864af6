// Package response writes the storefront's JSON wire format.
//
// Success bodies are plain payload objects (optionally carrying "message");
// failures are always {"error": "..."} with the status code reflecting the
// outcome. Validation failures surface the first violated constraint's
// message as the error string.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/crafthaven/pkg/validate"
)

// M is a shorthand for response payload maps.
type M = map[string]interface{}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON writes an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	write(w, status, body)
}

// OK writes a 200 with the given payload.
func OK(w http.ResponseWriter, body interface{}) {
	write(w, http.StatusOK, body)
}

// Created writes a 201 with the given payload.
func Created(w http.ResponseWriter, body interface{}) {
	write(w, http.StatusCreated, body)
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, M{"error": message})
}

// ValidationError writes a 400 whose error string is the first failing
// field's message. The full field map rides along under "errors".
func ValidationError(w http.ResponseWriter, errs *validate.Errors) {
	write(w, http.StatusBadRequest, M{
		"error":  errs.First(),
		"errors": errs.Fields(),
	})
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Internal writes the generic 500 body. Details stay in the server log.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Something went wrong")
}
