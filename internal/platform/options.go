package platform

import (
	"log/slog"

	"github.com/aretw0/plop/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
)

// options holds the internal configuration used to open a store.
type options struct {
	repository   core.Repository
	codec        core.Codec
	logger       *slog.Logger
	adapter      string
	grid         float32
	readOnly     bool
	forceTemp    bool
	devSafety    bool
	strict       bool
	eventBuffer  int
	errorHandler func(error)
}

// Option defines a functional option for opening a store.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		grid:      core.DefaultGridSize,
		devSafety: true,
		strict:    true,
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger shared by the store, the session and the adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithRepository injects a storage adapter. The path argument and
// WithAdapter are then ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithCodec overrides the encoding picked from the file extension.
func WithCodec(c core.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithGridSize sets the snapping cell size. Defaults to 50.
func WithGridSize(size float32) Option {
	return func(o *options) {
		o.grid = size
	}
}

// WithReadOnly opens the store without ever writing to it.
// Saves return ErrReadOnly (logged and swallowed by soft-fail callers) and
// the dev sandbox is bypassed, since reading the real file is harmless.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp re-roots the state file into the temp directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
// By default (true) the state file is re-rooted into the temp directory so
// that development runs never touch the real board.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithStrict toggles strict decoding. Defaults to true.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithEventBuffer sizes the channel returned by Watch. Zero means 16.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
