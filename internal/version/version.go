// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata as "<version> (<commit>, <date>)".
// Unset commit and date are left out.
func String() string {
	switch {
	case Commit == "unknown" && Date == "unknown":
		return Version
	case Date == "unknown":
		return fmt.Sprintf("%s (%s)", Version, Commit)
	default:
		return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
	}
}
