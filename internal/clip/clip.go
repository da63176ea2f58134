// Package clip reads, writes and watches the system clipboard.
package clip

const (
	// MimeText is plain UTF-8 text.
	MimeText = "text/plain"
	// MimeHTML is an HTML fragment.
	MimeHTML = "text/html"
	// MimePNG is a PNG-encoded image.
	MimePNG = "image/png"
)

// Content is one typed representation of the clipboard.
type Content struct {
	Mime string
	Data []byte
}

// Backend is the interface every clipboard implementation satisfies.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard contents. Returns nil, nil when
	// the clipboard is empty or holds only unsupported types.
	Read() ([]Content, error)

	// Write replaces the clipboard contents.
	Write(contents []Content) error

	// Watch returns a channel signalled whenever the clipboard changes.
	// The channel is never closed; callers Read after each signal.
	Watch() <-chan struct{}

	// Close releases any resources held by the backend.
	Close()
}

// signal performs a non-blocking send on a buffered watch channel.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
