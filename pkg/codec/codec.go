// Package codec holds the structural text encodings used to persist snapshots.
//
// Both encodings decode strictly by default: unknown keys are rejected and
// every field without an omitempty tag must be present, so a file that only
// looks like a snapshot is treated as corrupt rather than half-loaded.
package codec

import (
	"path/filepath"
	"strings"

	"github.com/aretw0/plop/pkg/core"
)

// Default returns the codec used when no extension hint is available.
func Default() core.Codec {
	return NewJSON(true)
}

// Defaults returns the standard set of codecs keyed by file extension.
func Defaults(strict bool) map[string]core.Codec {
	return map[string]core.Codec{
		".json": NewJSON(strict),
		".yaml": NewYAML(strict),
		".yml":  NewYAML(strict),
	}
}

// ForPath selects a codec from the extension of path, defaulting to JSON.
func ForPath(path string) core.Codec {
	return ForExtension(filepath.Ext(path))
}

// ForExtension selects a codec for ext (with or without the leading dot).
func ForExtension(ext string) core.Codec {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if c, ok := Defaults(true)[ext]; ok {
		return c
	}
	return Default()
}

// ByName returns the codec called name ("json" or "yaml").
func ByName(name string) (core.Codec, bool) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSON(true), true
	case "yaml", "yml":
		return NewYAML(true), true
	}
	return nil, false
}
