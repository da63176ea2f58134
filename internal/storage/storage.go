// Package storage selects the persistence backend for clipboard history.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/cristianoliveira/cliptray/internal/config"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/storage/sqlite"
)

const (
	// BackendMemory keeps history for the lifetime of the process only.
	BackendMemory = "memory"
	// BackendSQLite persists history to {state_dir}/history.db.
	BackendSQLite = "sqlite"

	historyDBFileName = "history.db"
)

// Backend is a history.Store that owns resources.
type Backend interface {
	history.Store
	Close() error
}

var _ Backend = (*sqlite.SQLiteStorage)(nil)

// NewFromConfig creates the backend named by storage_backend.
// A nil Backend means history lives in memory.
func NewFromConfig() (Backend, error) {
	return NewForBackend(config.Get("storage_backend", BackendMemory), config.Get("state_dir", ""))
}

// NewForBackend creates a backend by name. SQLite failures fall back to
// memory with a warning.
func NewForBackend(backend, stateDir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return nil, nil
	case BackendSQLite:
		if strings.TrimSpace(stateDir) == "" {
			return nil, fmt.Errorf("storage: state directory is required for %s backend", BackendSQLite)
		}
		store, err := sqlite.NewSQLiteStorage(DBPath(stateDir))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to memory: %v", err))
			return nil, nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}

// DBPath returns the SQLite database location under stateDir.
func DBPath(stateDir string) string {
	return filepath.Join(stateDir, historyDBFileName)
}

// NewManager builds a history manager on top of the configured backend.
// The returned close function releases the backend and is never nil.
func NewManager(maxSize int) (*history.Manager, func() error, error) {
	backend, err := NewFromConfig()
	if err != nil {
		return nil, nil, err
	}

	opts := []history.Option{history.WithMaxSize(maxSize)}
	closeFn := func() error { return nil }
	if backend != nil {
		opts = append(opts, history.WithStore(backend))
		closeFn = backend.Close
	}

	manager, err := history.NewManager(opts...)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return manager, closeFn, nil
}
