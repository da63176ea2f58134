package clip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"sync"
	"time"

	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/logging"
)

// DefaultDebounce coalesces bursts of change signals into one capture.
const DefaultDebounce = 100 * time.Millisecond

// ErrNothingToRestore indicates an item without content.
var ErrNothingToRestore = errors.New("clipboard item has no content to restore")

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period between a change and its capture.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithClock overrides the timestamp source for captured items.
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		if now != nil {
			w.now = now
		}
	}
}

// WithWatcherLogger overrides the component logger.
func WithWatcherLogger(logger logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher turns clipboard changes into history items.
type Watcher struct {
	backend  Backend
	onItem   func(history.Item)
	debounce time.Duration
	now      func() time.Time
	logger   logging.Logger

	mu   sync.Mutex
	last []byte
}

// NewWatcher creates a watcher that reports new clipboard content to onItem.
func NewWatcher(backend Backend, onItem func(history.Item), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		backend:  backend,
		onItem:   onItem,
		debounce: DefaultDebounce,
		now:      time.Now,
		logger:   logging.With("component", "clip", "backend", backend.Name()),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run captures the current clipboard, then every debounced change, until
// ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.captureAndReport()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.backend.Watch():
			timer.Reset(w.debounce)
		case <-timer.C:
			w.captureAndReport()
		}
	}
}

func (w *Watcher) captureAndReport() {
	item, ok, err := w.Capture()
	if err != nil {
		w.logger.Warn("clipboard read failed", "error", err.Error())
		return
	}
	if ok && w.onItem != nil {
		w.onItem(item)
	}
}

// Capture reads the clipboard once. ok is false when the clipboard is empty
// or unchanged since the last capture or restore.
func (w *Watcher) Capture() (history.Item, bool, error) {
	contents, err := w.backend.Read()
	if err != nil {
		return history.Item{}, false, fmt.Errorf("read clipboard: %w", err)
	}
	best, found := preferred(contents)
	if !found {
		return history.Item{}, false, nil
	}

	fp := fingerprint(best)
	w.mu.Lock()
	if bytes.Equal(fp, w.last) {
		w.mu.Unlock()
		return history.Item{}, false, nil
	}
	w.last = fp
	w.mu.Unlock()

	item := toItem(best, w.now())
	w.logger.Debug("clipboard captured", "type", item.Type.String(), "bytes", item.Size())
	return item, true, nil
}

// Restore writes item back to the clipboard. The write is not reported as
// a new capture.
func (w *Watcher) Restore(item history.Item) error {
	content, err := fromItem(item)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.last = fingerprint(content)
	w.mu.Unlock()

	if err := w.backend.Write([]Content{content}); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	w.logger.Debug("clipboard restored", "type", item.Type.String(), "bytes", item.Size())
	return nil
}

// Restore writes item to backend without a watcher, e.g. from the CLI.
func Restore(backend Backend, item history.Item) error {
	content, err := fromItem(item)
	if err != nil {
		return err
	}
	if err := backend.Write([]Content{content}); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// preferred picks the richest supported representation: image, then
// HTML, then plain text.
func preferred(contents []Content) (Content, bool) {
	for _, mime := range []string{MimePNG, MimeHTML, MimeText} {
		for _, c := range contents {
			if c.Mime == mime && len(c.Data) > 0 {
				return c, true
			}
		}
	}
	return Content{}, false
}

func toItem(c Content, at time.Time) history.Item {
	switch c.Mime {
	case MimePNG:
		width, height := 0, 0
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(c.Data)); err == nil {
			width, height = cfg.Width, cfg.Height
		}
		return history.NewImageItem(c.Data, width, height, at)
	case MimeHTML:
		item := history.NewTextItem(string(c.Data), at)
		item.Type = history.TypeHTML
		return item
	default:
		return history.NewTextItem(string(c.Data), at)
	}
}

func fromItem(item history.Item) (Content, error) {
	if item.Type == history.TypeImage {
		if len(item.Data) == 0 {
			return Content{}, ErrNothingToRestore
		}
		return Content{Mime: MimePNG, Data: item.Data}, nil
	}
	if item.Text == "" {
		return Content{}, ErrNothingToRestore
	}
	mime := MimeText
	if item.Type == history.TypeHTML {
		mime = MimeHTML
	}
	return Content{Mime: mime, Data: []byte(item.Text)}, nil
}

// fingerprint identifies content regardless of MIME aliasing between
// HTML and plain text.
func fingerprint(c Content) []byte {
	kind := byte('t')
	if c.Mime == MimePNG {
		kind = 'i'
	}
	return append([]byte{kind}, c.Data...)
}
