// Package version carries build metadata injected via ldflags.
package version

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
