// Package version carries build metadata for the executable.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

// String returns the human-readable version line.
func String() string {
	return fmt.Sprintf("nesgo %s (%s)", Version, Commit)
}
