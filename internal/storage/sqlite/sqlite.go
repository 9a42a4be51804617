// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. The directory only ever needs one row — the snapshot of the
// whole collection — so a two-column key/value table is all the schema
// there is.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-directory/internal/config"
	"github.com/aanand-mishra/student-directory/internal/storage"
	"github.com/aanand-mishra/student-directory/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db  *sql.DB
	key string
}

// New opens the SQLite database at cfg.Storage.Path, creates the kv table
// if it does not already exist, and returns a ready-to-use *SQLite that
// reads and writes the snapshot under cfg.Storage.Key.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Schema:
	//   key   — snapshot name (one row per key, normally just one)
	//   value — the JSON-encoded collection written by storage.Encode
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	key := cfg.Storage.Key
	if key == "" {
		key = storage.DefaultKey
	}

	return &SQLite{Db: db, key: key}, nil
}

// Load reads the snapshot row and decodes it.
func (s *SQLite) Load(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx, "SELECT value FROM kv WHERE key = ? LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("Load: prepare: %w", err)
	}
	defer stmt.Close()

	var value []byte
	if err := stmt.QueryRowContext(ctx, s.key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("Load: scan: %w", err)
	}

	students, err := storage.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	return students, nil
}

// Save rewrites the snapshot row. The upsert keeps the table at one row
// per key no matter how many times the collection changes.
func (s *SQLite) Save(ctx context.Context, students []types.Student) error {
	value, err := storage.Encode(students)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
	)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, s.key, value); err != nil {
		return fmt.Errorf("Save: exec: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
