// Package directory is the record store: the single owner of the ordered
// student collection.
//
// Collection holds the pure transitions. Each one returns a new slice and
// leaves its receiver untouched, so a caller holding the old collection
// keeps seeing the old state. Store wraps a Collection with id generation,
// locking and persistence.
package directory

import "github.com/aanand-mishra/student-directory/internal/types"

// Collection is the ordered list of students, most recent first.
type Collection []types.Student

// Len returns the number of records.
func (c Collection) Len() int { return len(c) }

// Index returns the position of the record with id, or -1.
func (c Collection) Index(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the record with id.
func (c Collection) Find(id string) (types.Student, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return types.Student{}, false
}

// Clone returns a copy that shares no backing array with c. The result is
// never nil.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Add places {id, data} at the front.
func (c Collection) Add(id string, data types.StudentFields) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, types.Student{ID: id, StudentFields: data})
	return append(out, c...)
}

// Update replaces the record with id wholesale, keeping its position.
// An unknown id returns c unchanged and false.
func (c Collection) Update(id string, data types.StudentFields) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	out := c.Clone()
	out[i] = types.Student{ID: id, StudentFields: data}
	return out, true
}

// Delete removes the record with id, preserving the order of the rest.
// An unknown id returns c unchanged and false.
func (c Collection) Delete(id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...), true
}

// DeleteAll returns an empty collection.
func (c Collection) DeleteAll() Collection {
	return Collection{}
}
