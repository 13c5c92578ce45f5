package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func String() string {
	return fmt.Sprintf("inkwash v%s (%s)", Version, GitCommit)
}
