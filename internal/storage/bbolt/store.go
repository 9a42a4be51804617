// Package bbolt stores the directory snapshot in a BoltDB file.
package bbolt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aanand-mishra/student-directory/internal/config"
	"github.com/aanand-mishra/student-directory/internal/storage"
	"github.com/aanand-mishra/student-directory/internal/types"
	"go.etcd.io/bbolt"
)

const directoryBucket = "directory"

// Store provides a BoltDB-backed storage.Storage.
type Store struct {
	db  *bbolt.DB
	key []byte
}

// Open opens the BoltDB file named by cfg.Storage.Path.
func Open(cfg *config.Config) (*Store, error) {
	path := cfg.Storage.Path
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	key := cfg.Storage.Key
	if key == "" {
		key = storage.DefaultKey
	}

	store := &Store{db: db, key: []byte(key)}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(directoryBucket)); err != nil {
			return fmt.Errorf("create directory bucket: %w", err)
		}
		return nil
	})
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load fetches and decodes the snapshot.
func (s *Store) Load(ctx context.Context) ([]types.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(directoryBucket))
		if bucket == nil {
			return fmt.Errorf("directory bucket is missing")
		}
		data := bucket.Get(s.key)
		if data == nil {
			return storage.ErrNotFound
		}
		// Bolt memory is only valid inside the transaction.
		payload = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	students, err := storage.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return students, nil
}

// Save encodes and writes the snapshot.
func (s *Store) Save(ctx context.Context, students []types.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := storage.Encode(students)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(directoryBucket))
		if bucket == nil {
			return fmt.Errorf("directory bucket is missing")
		}
		return bucket.Put(s.key, payload)
	})
}
