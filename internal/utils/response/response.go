// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-directory/internal/validation"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a student, a listing, an id…).
// Error responses always look like:
//
//	{ "status": "error", "error": "Name is required" }
//
// Validation failures additionally carry one message per field, the same
// text the student form shows under each input:
//
//	{ "status": "error", "error": "...", "fields": { "name": "Name is required" } }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (storage failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts the validator's field errors into a Response.
// Error joins the per-field messages in field order so clients that only
// read "error" still see every problem.
func ValidationError(errs validator.ValidationErrors) Response {
	fields := validation.Messages(errs)

	var errMessages []string
	seen := make(map[string]bool, len(errs))
	for _, e := range errs {
		if seen[e.Field()] {
			continue
		}
		seen[e.Field()] = true
		errMessages = append(errMessages, fields[e.Field()])
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
		Fields: fields,
	}
}
