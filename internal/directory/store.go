package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-directory/internal/storage"
	"github.com/aanand-mishra/student-directory/internal/types"
	"github.com/google/uuid"
)

// Store owns the collection for the lifetime of the process. It is created
// once in main and handed to whoever needs it; there is no package-level
// instance.
//
// Every mutation builds the next collection, saves it, and only then swaps
// it in under the write lock. Readers therefore never observe a partially
// applied change, and memory never holds a state the backend rejected.
type Store struct {
	mu      sync.RWMutex
	records Collection
	backend storage.Storage
	newID   func() string
	issued  map[string]struct{}
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator. Generated ids that were
// already loaded or handed out by this Store are discarded and the
// generator is called again.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for store events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New rehydrates a Store from backend. A backend that has never been
// written to yields an empty collection.
func New(ctx context.Context, backend storage.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		newID:   uuid.NewString,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := backend.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		records = nil
	case err != nil:
		return nil, fmt.Errorf("directory.New: load: %w", err)
	}
	s.records = Collection(records).Clone()
	s.issued = make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		s.issued[r.ID] = struct{}{}
	}

	s.log.Info("directory loaded", slog.Int("students", len(s.records)))
	return s, nil
}

// All returns a copy of the collection in display order.
func (s *Store) All() Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.Clone()
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with id.
func (s *Store) Get(id string) (types.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.Find(id)
}

// Add stores a new record at the front of the collection and returns its
// generated id. data is assumed to be validated already.
func (s *Store) Add(ctx context.Context, data types.StudentFields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.uniqueID()
	if err := s.commit(ctx, s.records.Add(id, data)); err != nil {
		return "", fmt.Errorf("directory.Add: %w", err)
	}
	s.issued[id] = struct{}{}

	s.log.Debug("student added", slog.String("id", id))
	return id, nil
}

// Update replaces the record with id. It reports false, and leaves both
// memory and storage untouched, when no such record exists.
func (s *Store) Update(ctx context.Context, id string, data types.StudentFields) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.records.Update(id, data)
	if !ok {
		s.log.Debug("update of unknown student ignored", slog.String("id", id))
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, fmt.Errorf("directory.Update: %w", err)
	}
	return true, nil
}

// UpdateIfChanged is Update that also skips the write when data equals the
// stored fields. The comparison and the write happen under one lock.
func (s *Store) UpdateIfChanged(ctx context.Context, id string, data types.StudentFields) (found, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records.Find(id)
	if !ok {
		s.log.Debug("update of unknown student ignored", slog.String("id", id))
		return false, false, nil
	}
	if current.Fields() == data {
		return true, false, nil
	}

	next, _ := s.records.Update(id, data)
	if err := s.commit(ctx, next); err != nil {
		return true, false, fmt.Errorf("directory.UpdateIfChanged: %w", err)
	}
	return true, true, nil
}

// Delete removes the record with id. It reports false when no such record
// exists.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.records.Delete(id)
	if !ok {
		s.log.Debug("delete of unknown student ignored", slog.String("id", id))
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, fmt.Errorf("directory.Delete: %w", err)
	}
	return true, nil
}

// DeleteAll empties the collection and returns how many records it held.
// The empty collection is persisted even when nothing was removed.
func (s *Store) DeleteAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	if err := s.commit(ctx, s.records.DeleteAll()); err != nil {
		return 0, fmt.Errorf("directory.DeleteAll: %w", err)
	}
	return n, nil
}

// commit persists next and installs it. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next Collection) error {
	if err := s.backend.Save(ctx, next); err != nil {
		s.log.Error("failed to persist directory", slog.String("error", err.Error()))
		return fmt.Errorf("save: %w", err)
	}
	s.records = next
	return nil
}

// uniqueID draws ids until one has never been seen, so a deleted
// student's id is not handed to a new one. Callers hold s.mu.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if _, used := s.issued[id]; id != "" && !used {
			return id
		}
	}
}
