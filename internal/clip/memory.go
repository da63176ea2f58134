package clip

import (
	"fmt"
	"sync"
)

// Memory is a process-local clipboard. It stands in for the system
// clipboard when no display server is available, and in tests.
type Memory struct {
	mu       sync.RWMutex
	contents []Content
	writes   int
	watchCh  chan struct{}
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{watchCh: make(chan struct{}, 1)}
}

func (m *Memory) Name() string { return "memory (headless)" }

func (m *Memory) Read() ([]Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.contents) == 0 {
		return nil, nil
	}
	return cloneContents(m.contents), nil
}

func (m *Memory) Write(contents []Content) error {
	for _, c := range contents {
		switch c.Mime {
		case MimeText, MimeHTML, MimePNG:
		default:
			return fmt.Errorf("unsupported MIME type: %s", c.Mime)
		}
	}
	m.mu.Lock()
	m.contents = cloneContents(contents)
	m.writes++
	m.mu.Unlock()
	signal(m.watchCh)
	return nil
}

// SetText replaces the clipboard with text, as another application would.
func (m *Memory) SetText(text string) {
	_ = m.Write([]Content{{Mime: MimeText, Data: []byte(text)}})
}

// Writes returns how many times the clipboard was written.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *Memory) Watch() <-chan struct{} { return m.watchCh }

func (m *Memory) Close() {}

func cloneContents(contents []Content) []Content {
	out := make([]Content, len(contents))
	for i, c := range contents {
		out[i] = Content{Mime: c.Mime, Data: append([]byte(nil), c.Data...)}
	}
	return out
}
