package plop

import _ "embed"

// Version is the release of the library and of the plop command.
//
//go:embed VERSION
var Version string
