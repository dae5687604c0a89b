package version

import "fmt"

// Build information, overridden at link time:
//
//	-X github.com/arthur-debert/fileconv/internal/version.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns the build information on one line.
func Info() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
