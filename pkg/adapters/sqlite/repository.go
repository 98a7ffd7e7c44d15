// Package sqlite stores the encoded snapshot as a row of a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/plop/pkg/core"
)

// DefaultKey names the row holding the snapshot.
const DefaultKey = "state"

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path     string
	Key      string
	ReadOnly bool
	Logger   *slog.Logger
}

// Repository implements core.Repository using one row of a SQLite table.
type Repository struct {
	config Config

	mu          sync.RWMutex
	db          *sql.DB
	initialized bool
	lastWrite   *time.Time
}

// NewRepository creates a repository. The database is opened by Initialize.
func NewRepository(config Config) *Repository {
	if config.Key == "" {
		config.Key = DefaultKey
	}
	return &Repository{config: config}
}

// Initialize opens the database and creates the schema.
//
// In read-only mode the file is opened with mode=ro and the schema is left
// alone. A database that does not exist yet is not created; it is opened on
// the first Read after it appears.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}
	if r.config.ReadOnly {
		if err := r.openReadOnly(); err != nil {
			return err
		}
		r.initialized = true
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(r.config.Path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", r.config.Path+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	r.db = db
	r.initialized = true
	return nil
}

// openReadOnly opens an existing database file. A missing file is not an
// error and leaves the handle nil. The caller holds r.mu.
func (r *Repository) openReadOnly() error {
	if _, err := os.Stat(r.config.Path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat database: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+r.config.Path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db
	return nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = false
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Repository) handle() (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return nil, fmt.Errorf("sqlite repository not initialized")
	}
	if r.db == nil && r.config.ReadOnly {
		if err := r.openReadOnly(); err != nil {
			return nil, err
		}
	}
	if r.db == nil {
		return nil, fmt.Errorf("%s: %w", r.config.Path, core.ErrNotFound)
	}
	return r.db, nil
}

// Read returns the stored snapshot, or an error wrapping core.ErrNotFound
// when no row exists yet.
func (r *Repository) Read(ctx context.Context) ([]byte, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}

	var body string
	err = db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE key = ?`, r.config.Key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %q: %w", r.config.Key, core.ErrNotFound)
		}
		// A read-only database that was never written has no table yet.
		if r.config.ReadOnly {
			return nil, fmt.Errorf("snapshot %q: %w (%v)", r.config.Key, core.ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return []byte(body), nil
}

// Write upserts the snapshot row.
func (r *Repository) Write(ctx context.Context, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.handle()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		INSERT INTO snapshots (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		r.config.Key, string(data), now)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	r.mu.Lock()
	r.lastWrite = &now
	r.mu.Unlock()

	if r.config.Logger != nil {
		r.config.Logger.Debug("snapshot written", "path", r.config.Path, "key", r.config.Key, "bytes", len(data))
	}
	return nil
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path      string     `json:"path"`
	Key       string     `json:"key"`
	ReadOnly  bool       `json:"read_only"`
	Open      bool       `json:"open"`
	LastWrite *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{
		Path:      r.config.Path,
		Key:       r.config.Key,
		ReadOnly:  r.config.ReadOnly,
		Open:      r.db != nil,
		LastWrite: r.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
