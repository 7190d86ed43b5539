// Package psdb provides build metadata for the psdb application.
package psdb

var (
	// Version is set by the build process via ldflags.
	Version = "v0.3.1"

	// Build is the build timestamp, set via ldflags.
	Build = "n/a"
)
