package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/plop/pkg/adapters/fs"
	"github.com/aretw0/plop/pkg/adapters/sqlite"
	"github.com/aretw0/plop/pkg/codec"
	"github.com/aretw0/plop/pkg/core"
)

// Init resolves the state path and returns an initialized repository.
// The path is adapter-specific: the state file for "fs", the database file
// for "sqlite".
func Init(path string, opts ...Option) (core.Repository, error) {
	return initRepository(path, buildOptions(opts))
}

func initRepository(path string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	resolved := resolvePath(path, o)

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		repo = fs.NewRepository(fs.Config{
			Path:         resolved,
			ReadOnly:     o.readOnly,
			Logger:       o.logger,
			EventBuffer:  o.eventBuffer,
			ErrorHandler: o.errorHandler,
		})
	case AdapterSQLite:
		repo = sqlite.NewRepository(sqlite.Config{
			Path:     resolved,
			ReadOnly: o.readOnly,
			Logger:   o.logger,
		})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// resolvePath applies the dev sandbox. Read-only runs and an explicit
// WithDevSafety(false) use the real path.
func resolvePath(path string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	dev := IsDevRun()
	useTemp := o.forceTemp || (dev && !bypass)
	resolved := ResolveStatePath(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp:
			o.logger.Warn("running in SAFE MODE (dev/test sandbox)", "original_path", path, "resolved_path", resolved)
		case dev && o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case dev:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	return resolved
}

// selectCodec picks the encoding for a repository. SQLite rows always hold
// JSON; files follow their extension.
func selectCodec(repo core.Repository, o *options) core.Codec {
	if o.codec != nil {
		return o.codec
	}
	if r, ok := repo.(*fs.Repository); ok {
		if c, ok := codec.Defaults(o.strict)[extension(r.Path)]; ok {
			return c
		}
	}
	return codec.NewJSON(o.strict)
}
