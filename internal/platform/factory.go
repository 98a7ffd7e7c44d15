package platform

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/core"
)

// New opens the multi-board store at path and returns a loaded session.
//
//	s, err := platform.New("", platform.WithGridSize(25))
//	defer s.Close(ctx)
func New(path string, opts ...Option) (*canvas.Session, error) {
	o := buildOptions(opts)

	c, err := canvas.New(o.grid)
	if err != nil {
		return nil, err
	}

	store, err := openStore(path, core.NewState, o)
	if err != nil {
		return nil, err
	}

	s := canvas.NewSession(store, c, o.logger)
	s.Load(context.Background())
	return s, nil
}

// OpenStore opens a store for any snapshot type without loading it.
func OpenStore[T any](path string, defaults func() T, opts ...Option) (*core.Store[T], error) {
	return openStore(path, defaults, buildOptions(opts))
}

func openStore[T any](path string, defaults func() T, o *options) (*core.Store[T], error) {
	repo, err := initRepository(path, o)
	if err != nil {
		return nil, err
	}
	return core.NewStore(repo, selectCodec(repo, o), defaults, o.logger), nil
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
