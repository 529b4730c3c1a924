// Package httpjson holds the JSON request/response helpers shared by the
// HTTP handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/crossroads/apparel-backend/internal/models"
)

// Write writes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes {"error": message} with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]string{"error": message})
}

// Read decodes the request body into dst. An empty body leaves dst at its
// zero value so the service reports the missing fields.
func Read(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// StatusFor maps a service error onto the HTTP status the client sees.
// Anything unrecognised is a server error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text of a service error: the detail
// after the sentinel that services add with fmt.Errorf("%w: ...").
func Message(err error) string {
	msg := err.Error()
	var first error
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		if errs := u.Unwrap(); len(errs) > 0 {
			first = errs[0]
		}
	case interface{ Unwrap() error }:
		first = u.Unwrap()
	}
	if first == nil {
		return msg
	}
	return strings.TrimPrefix(msg, first.Error()+": ")
}
