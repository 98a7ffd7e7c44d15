package fs

import (
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/plop/pkg/codec"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path string `json:"path"`
	// Format is the encoding the file extension implies.
	Format        string     `json:"format"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	LastRead      *time.Time `json:"last_read,omitempty"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:          r.Path,
		Format:        codec.ForPath(r.Path).Name(),
		ReadOnly:      r.config.ReadOnly,
		WatcherActive: r.watcherActive,
		LastRead:      r.lastRead,
		LastWrite:     r.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
