package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/plop/pkg/core"
)

// Repository implements core.Repository on top of a single file.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastRead      *time.Time
	lastWrite     *time.Time
}

// Config holds the configuration for the file repository.
type Config struct {
	Path     string
	ReadOnly bool
	Logger   *slog.Logger
	// Perm is the mode of a newly created file. Zero means 0644. An existing
	// file keeps its mode.
	Perm os.FileMode
	// EventBuffer sizes the channel returned by Watch. Zero means 16.
	EventBuffer int
	// ErrorHandler receives runtime watcher failures, which are otherwise only logged.
	ErrorHandler func(error)
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Perm == 0 {
		config.Perm = 0644
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 16
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize checks that the path can hold a state file.
// Directories are created lazily on the first write.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.Path == "" {
		return fmt.Errorf("state path is empty")
	}
	info, err := os.Stat(r.Path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("state path is a directory: %s", r.Path)
	}
	return nil
}

// Read returns the file contents, or an error wrapping core.ErrNotFound
// when the file does not exist.
func (r *Repository) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", r.Path, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	r.touch(&r.lastRead)
	r.debug("state file read", "path", r.Path, "bytes", len(data))
	return data, nil
}

// Write atomically replaces the file contents.
//
// Workflow:
//  1. Refuse in read-only mode.
//  2. Create the parent directory.
//  3. Write to a temp file beside the target and rename it into place.
//  4. Sync the directory so the new entry is durable.
func (r *Repository) Write(ctx context.Context, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := replaceFile(r.Path, data, r.config.Perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := syncDir(filepath.Dir(r.Path)); err != nil {
		r.debug("directory sync skipped", "path", r.Path, "error", err)
	}

	r.touch(&r.lastWrite)
	r.debug("state file written", "path", r.Path, "bytes", len(data))
	return nil
}

func (r *Repository) touch(field **time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	*field = &now
}

func (r *Repository) debug(msg string, args ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, args...)
	}
}
