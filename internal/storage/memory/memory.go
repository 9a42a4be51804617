// Package memory is an in-process storage.Storage. It keeps the encoded
// snapshot rather than the slice itself so a Load never aliases what was
// saved, the same as a real backend.
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/student-directory/internal/storage"
	"github.com/aanand-mishra/student-directory/internal/types"
)

// Memory holds one encoded snapshot in process memory.
type Memory struct {
	mu       sync.RWMutex
	snapshot []byte
	saves    int
}

// New returns an empty Memory. Load reports storage.ErrNotFound until the
// first Save.
func New() *Memory {
	return &Memory{}
}

// Load decodes the last saved snapshot.
func (m *Memory) Load(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	data := m.snapshot
	m.mu.RUnlock()

	if data == nil {
		return nil, storage.ErrNotFound
	}
	return storage.Decode(data)
}

// Save encodes students and replaces the snapshot.
func (m *Memory) Save(_ context.Context, students []types.Student) error {
	data, err := storage.Encode(students)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.snapshot = data
	m.saves++
	m.mu.Unlock()
	return nil
}

// Saves reports how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
