package core

import "context"

// Repository defines the contract for persisting an encoded snapshot.
// Adhering to this interface keeps the store independent of the
// underlying storage mechanism (a file, a SQLite row, ...).
type Repository interface {
	// Read returns the persisted bytes. It returns an error wrapping
	// ErrNotFound when nothing has been persisted yet.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the persisted bytes.
	Write(ctx context.Context, data []byte) error

	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error
}

// Codec converts snapshots to and from their structural text form.
type Codec interface {
	// Name identifies the encoding (e.g. "json").
	Name() string
	// Encode renders v as pretty-printed text.
	Encode(v any) ([]byte, error)
	// Decode parses data into v, failing when data does not have v's shape.
	Decode(data []byte, v any) error
}

// Watchable defines an interface for repositories that can report external changes.
type Watchable interface {
	// Watch emits an event whenever the persisted snapshot changes outside the
	// process. The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
