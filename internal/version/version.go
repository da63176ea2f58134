// Package version reports the cliptray build.
package version

import "runtime/debug"

// Overridden at release time:
//
//	go build -ldflags "-X github.com/cristianoliveira/cliptray/internal/version.Version=1.0.0 \
//	  -X github.com/cristianoliveira/cliptray/internal/version.Commit=abc1234"
var (
	Version = "development"
	Commit  = "unknown"
)

const shortCommitLength = 7

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version with the commit appended when known. Builds
// without ldflags use the VCS revision stamped by the Go toolchain.
func String() string {
	commit := Commit
	if commit == "unknown" {
		commit = vcsRevision()
	}
	if commit == "" || commit == "unknown" {
		return Version
	}
	if len(commit) > shortCommitLength {
		commit = commit[:shortCommitLength]
	}
	return Version + "+" + commit
}

func vcsRevision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return ""
}
