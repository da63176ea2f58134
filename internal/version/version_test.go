package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, revision string) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		if revision == "" {
			return nil, false
		}
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: revision},
		}}, true
	}
}

func setVersion(t *testing.T, version, commit string) {
	t.Helper()
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() {
		Version = origVersion
		Commit = origCommit
	})
	Version = version
	Commit = commit
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		vcs      string
		expected string
	}{
		{"development build without vcs info", "development", "unknown", "", "development"},
		{"release with commit", "1.0.0", "abc1234", "", "1.0.0+abc1234"},
		{"long commit is shortened", "0.5.0", "def5678901234", "", "0.5.0+def5678"},
		{"vcs revision fills unknown commit", "development", "unknown", "0123456789abcdef", "development+0123456"},
		{"ldflags commit wins over vcs", "2.0.0", "feed123", "0123456789abcdef", "2.0.0+feed123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setVersion(t, tt.version, tt.commit)
			withBuildInfo(t, tt.vcs)
			assert.Equal(t, tt.expected, String())
		})
	}
}
