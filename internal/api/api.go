// Package api holds the JSON error contract shared by every HTTP handler and
// the wrapper that turns handler errors into responses.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Error is returned by handlers when the failure maps to a known status code.
type Error struct {
	Status      int
	Message     string
	Description string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Description)
}

// NewError creates a coded API error.
func NewError(status int, message, description string) *Error {
	return &Error{
		Status:      status,
		Message:     message,
		Description: description,
	}
}

// BadRequest creates a 400 API error.
func BadRequest(message, description string) *Error {
	return NewError(http.StatusBadRequest, message, description)
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, status int, message, description string) {
	WriteJSON(w, status, ErrorResponse{
		Message:     message,
		Description: description,
	})
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
