package cmd

import (
	"time"

	"github.com/cristianoliveira/cliptray/internal/clip"
	"github.com/cristianoliveira/cliptray/internal/config"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/storage"
	"github.com/cristianoliveira/cliptray/internal/version"
)

// historyOpener opens the configured clipboard history. The close function
// must be called when the command is done with the manager.
type historyOpener func() (*history.Manager, func() error, error)

// clipboardFactory connects to the clipboard.
type clipboardFactory func() clip.Backend

func openHistory() (*history.Manager, func() error, error) {
	return storage.NewManager(config.GetInt("max_history", history.DefaultMaxSize))
}

func newClipboard() clip.Backend {
	return clip.New(millis("poll_interval_ms", clip.DefaultPollInterval))
}

// millis reads a millisecond setting, falling back to def.
func millis(key string, def time.Duration) time.Duration {
	ms := config.GetInt(key, int(def/time.Millisecond))
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

type buildInfo struct{}

func (buildInfo) Version() string { return version.String() }
