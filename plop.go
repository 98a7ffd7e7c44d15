package plop

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/plop/internal/platform"
	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/core"
)

// --- Types ---

type (
	// State is the multi-board snapshot.
	State = core.State
	// SingleBoardState is the older single-board snapshot.
	SingleBoardState = core.SingleBoardState
	Board            = core.Board
	Note             = core.Note
	Color            = core.Color
	Pos2             = core.Pos2
	Vec2             = core.Vec2
	Rect             = core.Rect
	// Session is a loaded store together with its canvas projection.
	Session = canvas.Session
)

// Named colors.
var (
	Black     = core.Black
	White     = core.White
	Yellow    = core.Yellow
	LightBlue = core.LightBlue
	LightRed  = core.LightRed
)

// --- Configuration ---

// Option configures how a store is opened.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterSQLite = platform.AdapterSQLite
)

// WithLogger sets the logger for the store, the session and the adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithRepository injects a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithCodec overrides the encoding picked from the file extension.
func WithCodec(c core.Codec) Option {
	return platform.WithCodec(c)
}

// WithGridSize sets the snapping cell size.
func WithGridSize(size float32) Option {
	return platform.WithGridSize(size)
}

// WithReadOnly opens the store without writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the state file into the temp directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithStrict toggles strict decoding.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithEventBuffer sizes the watch event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the store at path and returns a loaded session.
// An empty path means DefaultPath().
func New(path string, opts ...Option) (*Session, error) {
	return platform.New(path, opts...)
}

// Init returns the initialized repository for path without a codec or
// store around it. It is the entry point for tools that move raw bytes.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// OpenStore opens a store for any snapshot type without loading it.
func OpenStore[T any](path string, defaults func() T, opts ...Option) (*core.Store[T], error) {
	return platform.OpenStore(path, defaults, opts...)
}

// --- Load & Save ---

// LoadState reads the multi-board snapshot at path. It never fails: a
// missing, unreadable or malformed file yields the default State.
func LoadState(path string, opts ...Option) State {
	return load(path, core.NewState, opts)
}

// SaveState writes st to path. Failures are logged, never returned.
func SaveState(st State, path string, opts ...Option) {
	save(st, path, core.NewState, opts)
}

// LoadSingleBoard reads a single-board snapshot at path, with the same
// fallback rules as LoadState.
func LoadSingleBoard(path string, opts ...Option) SingleBoardState {
	return load(path, core.NewSingleBoardState, opts)
}

// SaveSingleBoard writes a single-board snapshot. Failures are logged.
func SaveSingleBoard(st SingleBoardState, path string, opts ...Option) {
	save(st, path, core.NewSingleBoardState, opts)
}

func load[T any](path string, defaults func() T, opts []Option) T {
	store, err := platform.OpenStore(path, defaults, withDefaultLogger(opts)...)
	if err != nil {
		slog.Default().Warn("state store unavailable, starting fresh", "path", path, "error", err)
		return defaults()
	}
	defer release(store.Repository())
	return store.Load(context.Background()).Value
}

func save[T any](v T, path string, defaults func() T, opts []Option) {
	store, err := platform.OpenStore(path, defaults, withDefaultLogger(opts)...)
	if err != nil {
		slog.Default().Warn("state not saved", "path", path, "error", err)
		return
	}
	defer release(store.Repository())
	store.SaveQuietly(context.Background(), v)
}

func release(repo core.Repository) {
	if c, ok := repo.(io.Closer); ok {
		c.Close()
	}
}

func withDefaultLogger(opts []Option) []Option {
	return append([]Option{platform.WithLogger(slog.Default())}, opts...)
}

// --- Helpers ---

// SnapToGrid rounds pos to the nearest multiple of cell on each axis.
func SnapToGrid(pos Pos2, cell float32) Pos2 {
	return core.SnapToGrid(pos, cell)
}

// Upgrade converts a single-board snapshot to the multi-board layout.
func Upgrade(old SingleBoardState) State {
	return core.Upgrade(old)
}

// --- Safety & Utils ---

// DefaultFileName is the name of the state file in the home directory.
const DefaultFileName = platform.DefaultFileName

// DefaultPath returns the state file in the user's home directory.
func DefaultPath() string {
	return platform.DefaultPath()
}

// ResolveStatePath applies the dev sandbox rule to a state file path.
func ResolveStatePath(userPath string, forceTemp bool) string {
	return platform.ResolveStatePath(userPath, forceTemp)
}

// IsDevRun checks if the process runs via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
