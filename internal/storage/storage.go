// Package storage defines the Storage interface — the durability
// collaborator the record store rehydrates from at startup and rewrites
// after every mutation.
//
// WHY AN INTERFACE?
// ─────────────────
// The record store should not know or care where the collection lives.
// By depending only on this interface:
//
//   - Switching backends = implement the interface, change one line in
//     main.go. SQLite, BoltDB and an in-memory backend ship today.
//
//   - Writing tests = pass the memory backend. No files needed.
//
// Every backend stores the WHOLE collection under a single key, encoded
// with Encode. Only the collection is persisted; search term, current
// page and other view state never are.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-directory/internal/types"
)

// DefaultKey is the key the collection is stored under when the
// configuration does not name one.
const DefaultKey = "students"

var (
	// ErrNotFound means nothing has been saved under the key yet.
	ErrNotFound = errors.New("storage: snapshot not found")

	// ErrCorrupt means the stored bytes could not be turned back into a
	// valid collection.
	ErrCorrupt = errors.New("storage: snapshot is corrupt")
)

// Storage is the durability contract.
type Storage interface {
	// Load returns the saved collection in its persisted order.
	// Returns ErrNotFound if nothing was ever saved.
	Load(ctx context.Context) ([]types.Student, error)

	// Save replaces the saved collection with students.
	Save(ctx context.Context, students []types.Student) error

	// Close releases the backend's resources.
	Close() error
}
