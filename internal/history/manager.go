package history

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrItemNotFound indicates that no item has the requested ID.
	ErrItemNotFound = errors.New("clipboard item not found")
	// ErrInvalidItemID indicates an empty item ID.
	ErrInvalidItemID = errors.New("invalid clipboard item ID")
	// ErrEmptyContent indicates an item without text that was not added.
	ErrEmptyContent = errors.New("empty clipboard content")
	// ErrDuplicate indicates the item equals the newest entry and was not added.
	ErrDuplicate = errors.New("duplicate of newest clipboard item")
)

// DefaultMaxSize is the history capacity when none is configured.
const DefaultMaxSize = 100

// Store persists history. Implementations mirror the manager's mutations.
type Store interface {
	Load() ([]Item, error)
	Save(item Item) error
	Delete(id string) error
	Clear() error
	Trim(max int) error
}

// ChangeListener is called after every mutation with the new item count.
type ChangeListener func(count int)

// Option configures a Manager.
type Option func(*Manager)

// WithMaxSize sets the history capacity (minimum 1).
func WithMaxSize(n int) Option {
	return func(m *Manager) {
		m.maxSize = max(1, n)
	}
}

// WithStore mirrors mutations into store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// Manager holds clipboard items, newest first.
type Manager struct {
	mu        sync.RWMutex
	items     []Item
	maxSize   int
	store     Store
	listeners []ChangeListener
}

// NewManager creates a manager and loads persisted items, if any.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		return m, nil
	}

	items, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if len(items) > m.maxSize {
		items = items[:m.maxSize]
		if err := m.store.Trim(m.maxSize); err != nil {
			return nil, fmt.Errorf("trim history: %w", err)
		}
	}
	m.items = items
	return m, nil
}

// OnChange registers a listener for history mutations.
func (m *Manager) OnChange(listener ChangeListener) {
	if listener == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// Add prepends item. Empty text and a repeat of the newest item are
// rejected; an older equal item is moved to the front.
func (m *Manager) Add(item Item) error {
	if item.Type != TypeImage && strings.TrimSpace(item.Text) == "" {
		return ErrEmptyContent
	}

	m.mu.Lock()
	if len(m.items) > 0 && m.items[0].Equal(item) {
		m.mu.Unlock()
		return ErrDuplicate
	}

	var removedID string
	for i, existing := range m.items {
		if existing.Equal(item) {
			removedID = existing.ID
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	m.items = append([]Item{item}, m.items...)
	trimmed := len(m.items) > m.maxSize
	if trimmed {
		m.items = m.items[:m.maxSize]
	}
	count := len(m.items)
	maxSize := m.maxSize
	m.mu.Unlock()

	err := m.persist(func(s Store) error {
		if removedID != "" {
			if err := s.Delete(removedID); err != nil {
				return err
			}
		}
		if err := s.Save(item); err != nil {
			return err
		}
		if trimmed {
			return s.Trim(maxSize)
		}
		return nil
	})
	m.notify(count)
	return err
}

// Remove deletes the item with id.
func (m *Manager) Remove(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidItemID
	}

	m.mu.Lock()
	idx := m.indexOf(id)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	count := len(m.items)
	m.mu.Unlock()

	err := m.persist(func(s Store) error { return s.Delete(id) })
	m.notify(count)
	return err
}

// Clear removes every item.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()

	err := m.persist(func(s Store) error { return s.Clear() })
	m.notify(0)
	return err
}

// SetMaxSize changes the capacity, dropping the oldest items if needed.
func (m *Manager) SetMaxSize(n int) error {
	n = max(1, n)
	m.mu.Lock()
	m.maxSize = n
	trimmed := len(m.items) > n
	if trimmed {
		m.items = m.items[:n]
	}
	count := len(m.items)
	m.mu.Unlock()

	if !trimmed {
		return nil
	}
	err := m.persist(func(s Store) error { return s.Trim(n) })
	m.notify(count)
	return err
}

// MaxSize returns the capacity.
func (m *Manager) MaxSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxSize
}

// Count returns the number of items.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Items returns a copy of the history, newest first.
func (m *Manager) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Recent returns at most n newest items.
func (m *Manager) Recent(n int) []Item {
	items := m.Items()
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// Get returns the item with id.
func (m *Manager) Get(id string) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, ErrInvalidItemID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx := m.indexOf(id); idx >= 0 {
		return m.items[idx], nil
	}
	return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Search matches query case-insensitively against text, preview and type
// name. An empty query returns everything.
func (m *Manager) Search(query string) []Item {
	items := m.Items()
	if query == "" {
		return items
	}
	needle := strings.ToLower(query)
	results := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Text), needle) ||
			strings.Contains(strings.ToLower(item.Preview), needle) ||
			strings.Contains(strings.ToLower(item.Type.String()), needle) {
			results = append(results, item)
		}
	}
	return results
}

// indexOf must be called with m.mu held.
func (m *Manager) indexOf(id string) int {
	for i, item := range m.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) persist(fn func(Store) error) error {
	if m.store == nil {
		return nil
	}
	if err := fn(m.store); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

func (m *Manager) notify(count int) {
	m.mu.RLock()
	listeners := make([]ChangeListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()
	for _, listener := range listeners {
		listener(count)
	}
}
