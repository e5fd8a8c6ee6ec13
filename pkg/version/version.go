// Package version exposes build metadata set through -ldflags.
package version

import "fmt"

// Build metadata, overridden at link time:
//
//	-ldflags "-X github.com/rshade/herodex/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Set by the linker.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", GetVersion(), GetGitCommit(), GetBuildDate())
}
