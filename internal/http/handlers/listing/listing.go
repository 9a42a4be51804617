// Package listing contains the HTTP handlers that change what the student
// listing shows: the search term and the current page. Both respond with
// the recomputed listing so a client needs only one round trip.
package listing

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-directory/internal/utils/response"
	"github.com/aanand-mishra/student-directory/internal/view"
)

// State is the part of the dashboard these handlers drive.
type State interface {
	SetSearchTerm(term string)
	SetPage(n int)
	View() view.Result
}

type searchRequest struct {
	Term string `json:"term"`
}

type pageRequest struct {
	Page *int `json:"page"`
}

// Get handles GET /api/view.
func Get(l State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, l.View())
	}
}

// Search handles PUT /api/view/search with { "term": "..." }.
// An empty term clears the search. The listing always returns to page 1.
func Search(l State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if !decode(w, r, &req) {
			return
		}

		slog.Info("search term changed", slog.String("term", req.Term))
		l.SetSearchTerm(req.Term)
		response.WriteJSON(w, http.StatusOK, l.View())
	}
}

// Page handles PUT /api/view/page with { "page": 2 }.
func Page(l State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		if !decode(w, r, &req) {
			return
		}
		if req.Page == nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("field page is required")))
			return
		}

		slog.Info("page changed", slog.Int("page", *req.Page))
		l.SetPage(*req.Page)
		response.WriteJSON(w, http.StatusOK, l.View())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	return true
}
