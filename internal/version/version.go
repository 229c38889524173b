// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/kailas-cloud/campusbot/internal/version.Version=v1.2.0"
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for the version command.
func String() string {
	return fmt.Sprintf("campusbot %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
