package arbor

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release version of the library and CLI.
var Version = strings.TrimSpace(version)
