// Package view derives what the student listing shows from the full
// collection: the records matching the search term, the slice of them on
// the current page, and the page numbers to offer for navigation.
//
// Everything here is a pure function of its arguments. Nothing is cached
// and the input slice is never modified; callers recompute on demand.
package view

import (
	"strings"

	"github.com/aanand-mishra/student-directory/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WindowSize is the most page numbers PageWindow returns.
const WindowSize = 5

// Query is the transient listing state.
type Query struct {
	Search   string
	Page     int // 1-indexed
	PageSize int
}

// Result is one computed projection.
type Result struct {
	Records       []types.Student `json:"students"`
	TotalFiltered int             `json:"total_filtered"`
	TotalPages    int             `json:"total_pages"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
	FirstIndex    int             `json:"first_index"`
	LastIndex     int             `json:"last_index"`
	Window        []int           `json:"pages"`
}

// Project filters records by q.Search, cuts out page q.Page and computes
// the navigation window. An out-of-range page yields an empty Records
// slice, never an error.
func Project(records []types.Student, q Query) Result {
	filtered := Filter(records, q.Search)
	page := Paginate(len(filtered), q.Page, q.PageSize)

	visible := make([]types.Student, page.Last-page.First)
	copy(visible, filtered[page.First:page.Last])

	return Result{
		Records:       visible,
		TotalFiltered: len(filtered),
		TotalPages:    page.TotalPages,
		Page:          q.Page,
		PageSize:      page.Size,
		FirstIndex:    page.First,
		LastIndex:     page.Last,
		Window:        PageWindow(q.Page, page.TotalPages),
	}
}

// Filter keeps the records whose email contains term, ignoring case. An
// empty term keeps every record. The result never shares a backing array
// with records.
func Filter(records []types.Student, term string) []types.Student {
	if term == "" {
		out := make([]types.Student, len(records))
		copy(out, records)
		return out
	}

	// cases.Caser is stateful; one per call keeps Filter safe to use from
	// concurrent requests.
	lower := cases.Lower(language.Und)
	needle := lower.String(term)

	out := make([]types.Student, 0, len(records))
	for _, r := range records {
		if strings.Contains(lower.String(r.Email), needle) {
			out = append(out, r)
		}
	}
	return out
}
