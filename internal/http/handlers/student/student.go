// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject the directory we use a factory function that accepts it and
// returns a function with exactly that signature:
//
//	router.HandleFunc("POST /api/students", student.New(dash))
//
// New(dash) runs ONCE at startup; the returned closure runs on EVERY request.
package student

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-directory/internal/dashboard"
	"github.com/aanand-mishra/student-directory/internal/types"
	"github.com/aanand-mishra/student-directory/internal/utils/response"
	"github.com/aanand-mishra/student-directory/internal/validation"
	"github.com/aanand-mishra/student-directory/internal/view"
	"github.com/go-playground/validator/v10"
)

// Directory is what the handlers need from the dashboard. Depending on an
// interface keeps the handlers testable with a fake.
type Directory interface {
	Add(ctx context.Context, data types.StudentFields) (string, error)
	Update(ctx context.Context, id string, data types.StudentFields) (dashboard.UpdateOutcome, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
	Get(id string) (types.Student, bool)
	View() view.Result
}

var errEmptyBody = errors.New("request body is empty")

// decodeFields reads and validates a StudentFields body. It writes the
// 400 response itself and reports false when the request must stop.
func decodeFields(w http.ResponseWriter, r *http.Request) (types.StudentFields, bool) {
	var fields types.StudentFields

	err := json.NewDecoder(r.Body).Decode(&fields)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
		return fields, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return fields, false
	}

	if err := validation.Student(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
			return fields, false
		}
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return fields, false
	}
	return fields, true
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "Rakesh", "email": "rakesh@test.com", "phone": "9876543210",
//	  "gender": "Male", "department": "Computer Science" }
//
// Success response (201 Created):
//
//	{ "id": "4b6f3c3e-..." }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}

		id, err := dir.Add(r.Context(), fields)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.String("id", id))
		response.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// GetByID handles GET /api/students/{id}
//
//	200 OK         — the student
//	404 Not Found  — no student has that id
func GetByID(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		student, ok := dir.Get(id)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(notFound(id)))
			return
		}
		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students and returns the current listing:
// the filtered page plus its pagination metadata.
//
//	{ "students": [...], "total_filtered": 12, "total_pages": 3,
//	  "page": 1, "page_size": 5, "first_index": 0, "last_index": 5,
//	  "pages": [1, 2, 3] }
func GetList(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting student listing")
		response.WriteJSON(w, http.StatusOK, dir.View())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL fields of an existing student.
//
// Success responses (200 OK):
//
//	the updated student, or
//	{ "status": "unchanged" } when the body equals the stored record
//
// Error responses:
//
//	400 Bad Request  — empty body or validation failure
//	404 Not Found    — no student has that id
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}

		outcome, err := dir.Update(r.Context(), id, fields)
		if err != nil {
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		switch outcome {
		case dashboard.NotFound:
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(notFound(id)))
		case dashboard.Unchanged:
			slog.Info("student unchanged", slog.String("id", id))
			response.WriteJSON(w, http.StatusOK, map[string]string{"status": "unchanged"})
		default:
			slog.Info("student updated", slog.String("id", id))
			response.WriteJSON(w, http.StatusOK, types.Student{ID: id, StudentFields: fields})
		}
	}
}

// Delete handles DELETE /api/students/{id}
//
//	200 OK         — { "status": "deleted" }
//	404 Not Found  — no student has that id
func Delete(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		found, err := dir.Delete(r.Context(), id)
		if err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		if !found {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(notFound(id)))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// DeleteAll handles DELETE /api/students
//
//	200 OK — { "status": "deleted", "deleted": 7 }
func DeleteAll(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("deleting all students")

		n, err := dir.DeleteAll(r.Context())
		if err != nil {
			slog.Error("error deleting all students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("all students deleted", slog.Int("count", n))
		response.WriteJSON(w, http.StatusOK, map[string]any{"status": "deleted", "deleted": n})
	}
}

func notFound(id string) error {
	return errors.New("no student found with id: " + id)
}
