package state

import "github.com/cristianoliveira/cliptray/internal/history"

// ItemCapturedMsg is sent by the clipboard watcher for new content.
type ItemCapturedMsg struct {
	Item history.Item
}

// toastExpiredMsg triggers the re-render that hides an expired toast.
type toastExpiredMsg struct{}
