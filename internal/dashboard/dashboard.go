// Package dashboard holds the state of the student listing next to the
// record store: the search term, the current page and the fixed page size.
//
// A Dashboard is created once in main and passed to the HTTP handlers. All
// mutations go through it so that the listing rules are applied in one
// place:
//
//   - changing the search term goes back to page 1
//   - deleting every student goes back to page 1
//   - any change to the collection while a search term is set goes back
//     to page 1
//   - an update that changes nothing is not persisted
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/aanand-mishra/student-directory/internal/directory"
	"github.com/aanand-mishra/student-directory/internal/types"
	"github.com/aanand-mishra/student-directory/internal/view"
)

// UpdateOutcome tells the caller what Update did.
type UpdateOutcome int

const (
	// Updated means the record was replaced and persisted.
	Updated UpdateOutcome = iota
	// Unchanged means the submitted fields equal the stored ones.
	Unchanged
	// NotFound means no record has the id. Nothing happened.
	NotFound
)

func (o UpdateOutcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	case NotFound:
		return "not found"
	}
	return fmt.Sprintf("UpdateOutcome(%d)", int(o))
}

// Dashboard combines the record store with the listing state.
type Dashboard struct {
	store *directory.Store

	mu       sync.RWMutex
	search   string
	page     int
	pageSize int
}

// New returns a Dashboard on page 1 with no search term. pageSize is fixed
// for the lifetime of the Dashboard; values below 1 become 1.
func New(store *directory.Store, pageSize int) *Dashboard {
	return &Dashboard{
		store:    store,
		page:     1,
		pageSize: view.ClampPageSize(pageSize, 1, 0),
	}
}

// Add stores a new record and returns its id.
func (d *Dashboard) Add(ctx context.Context, data types.StudentFields) (string, error) {
	id, err := d.store.Add(ctx, data)
	if err != nil {
		return "", err
	}
	d.collectionChanged()
	return id, nil
}

// Update replaces the record with id unless it is missing or identical.
func (d *Dashboard) Update(ctx context.Context, id string, data types.StudentFields) (UpdateOutcome, error) {
	found, changed, err := d.store.UpdateIfChanged(ctx, id, data)
	switch {
	case err != nil:
		return NotFound, err
	case !found:
		return NotFound, nil
	case !changed:
		return Unchanged, nil
	}
	d.collectionChanged()
	return Updated, nil
}

// Delete removes the record with id and reports whether it existed.
func (d *Dashboard) Delete(ctx context.Context, id string) (bool, error) {
	found, err := d.store.Delete(ctx, id)
	if err != nil || !found {
		return found, err
	}
	d.collectionChanged()
	return true, nil
}

// DeleteAll removes every record and returns to page 1. An empty directory
// is left alone and reports 0.
func (d *Dashboard) DeleteAll(ctx context.Context) (int, error) {
	if d.store.Len() == 0 {
		d.resetPage()
		return 0, nil
	}

	n, err := d.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	d.resetPage()
	return n, nil
}

// Get returns one record.
func (d *Dashboard) Get(id string) (types.Student, bool) {
	return d.store.Get(id)
}

// All returns the whole collection, most recent first.
func (d *Dashboard) All() []types.Student {
	return d.store.All()
}

// SetSearchTerm replaces the search term and returns to page 1.
func (d *Dashboard) SetSearchTerm(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.search = term
	d.page = 1
}

// SetPage moves to page n. Pages outside [1, total pages] are accepted and
// project an empty listing.
func (d *Dashboard) SetPage(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.page = n
}

// Query returns the current listing state.
func (d *Dashboard) Query() view.Query {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return view.Query{Search: d.search, Page: d.page, PageSize: d.pageSize}
}

// View computes the listing for the current state.
func (d *Dashboard) View() view.Result {
	return view.Project(d.store.All(), d.Query())
}

// collectionChanged goes back to page 1 when a search term is set.
func (d *Dashboard) collectionChanged() {
	d.mu.Lock()
	if d.search != "" {
		d.page = 1
	}
	d.mu.Unlock()
}

func (d *Dashboard) resetPage() {
	d.mu.Lock()
	d.page = 1
	d.mu.Unlock()
}
