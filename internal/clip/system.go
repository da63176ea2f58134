package clip

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/cliptray/internal/logging"
	"golang.design/x/clipboard"
)

// DefaultPollInterval is how often the system backend samples the clipboard.
const DefaultPollInterval = 250 * time.Millisecond

var initClipboard = clipboard.Init

type systemBackend struct {
	watchCh   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	lastText  []byte
	lastImage []byte
}

// New returns the system clipboard backend, or an in-memory backend when no
// display is available (headless servers, containers, builds without cgo).
func New(pollInterval time.Duration) Backend {
	if err := initClipboard(); err != nil {
		logging.Warn("clipboard unavailable, running headless", "error", err.Error())
		return NewMemory()
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	b := &systemBackend{
		watchCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go b.poll(pollInterval)
	return b
}

func (b *systemBackend) Name() string { return "system clipboard (poll)" }

func (b *systemBackend) poll(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text := clipboard.Read(clipboard.FmtText)
			img := clipboard.Read(clipboard.FmtImage)
			if !bytes.Equal(text, b.lastText) || !bytes.Equal(img, b.lastImage) {
				b.lastText = text
				b.lastImage = img
				signal(b.watchCh)
			}
		}
	}
}

func (b *systemBackend) Read() ([]Content, error) {
	var contents []Content
	if img := clipboard.Read(clipboard.FmtImage); len(img) > 0 {
		contents = append(contents, Content{Mime: MimePNG, Data: img})
	}
	if text := clipboard.Read(clipboard.FmtText); len(text) > 0 {
		contents = append(contents, Content{Mime: MimeText, Data: text})
	}
	return contents, nil
}

func (b *systemBackend) Write(contents []Content) error {
	for _, c := range contents {
		switch c.Mime {
		case MimeText, MimeHTML:
			clipboard.Write(clipboard.FmtText, c.Data)
		case MimePNG:
			clipboard.Write(clipboard.FmtImage, c.Data)
		default:
			return fmt.Errorf("unsupported MIME type: %s", c.Mime)
		}
	}
	return nil
}

func (b *systemBackend) Watch() <-chan struct{} { return b.watchCh }

func (b *systemBackend) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}
