// Package sqlite provides a SQLite-backed clipboard history store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/cliptray/internal/history"
	_ "modernc.org/sqlite"
)

// ErrInvalidPath indicates an empty database path.
var ErrInvalidPath = errors.New("sqlite storage: db path cannot be empty")

const timestampLayout = time.RFC3339Nano

// SQLiteStorage implements history.Store using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

var _ history.Store = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens or creates the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, ErrInvalidPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	// The watcher and the UI both write; one connection serializes them.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// Load returns every stored item, newest first.
func (s *SQLiteStorage) Load() ([]history.Item, error) {
	rows, err := s.db.QueryContext(context.Background(), selectItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: load items: %w", err)
	}
	defer rows.Close()

	var items []history.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: iterate items: %w", err)
	}

	return items, nil
}

func scanItem(rows *sql.Rows) (history.Item, error) {
	var (
		item      history.Item
		typeName  string
		timestamp string
	)
	if err := rows.Scan(&item.ID, &item.Text, &typeName, &item.Preview, &timestamp,
		&item.ImageWidth, &item.ImageHeight, &item.Data); err != nil {
		return history.Item{}, fmt.Errorf("sqlite storage: scan item: %w", err)
	}
	ts, err := time.Parse(timestampLayout, timestamp)
	if err != nil {
		return history.Item{}, fmt.Errorf("sqlite storage: parse timestamp of %s: %w", item.ID, err)
	}
	item.Type = history.ParseType(typeName)
	item.Timestamp = ts
	return item, nil
}

// Save stores item as the newest entry. Saving an existing ID moves it to
// the front.
func (s *SQLiteStorage) Save(item history.Item) error {
	if strings.TrimSpace(item.ID) == "" {
		return history.ErrInvalidItemID
	}
	_, err := s.db.ExecContext(context.Background(), upsertItemSQL,
		item.ID,
		item.Text,
		item.Type.String(),
		item.Preview,
		item.Timestamp.UTC().Format(timestampLayout),
		item.ImageWidth,
		item.ImageHeight,
		item.Data,
	)
	if err != nil {
		return fmt.Errorf("sqlite storage: save item: %w", err)
	}
	return nil
}

// Delete removes the item with id.
func (s *SQLiteStorage) Delete(id string) error {
	if strings.TrimSpace(id) == "" {
		return history.ErrInvalidItemID
	}

	res, err := s.db.ExecContext(context.Background(), deleteItemSQL, id)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sqlite storage: delete item: %w: id %s", history.ErrItemNotFound, id)
	}
	return nil
}

// Clear removes every item.
func (s *SQLiteStorage) Clear() error {
	if _, err := s.db.ExecContext(context.Background(), clearItemsSQL); err != nil {
		return fmt.Errorf("sqlite storage: clear items: %w", err)
	}
	return nil
}

// Trim keeps only the newest max items.
func (s *SQLiteStorage) Trim(max int) error {
	if max < 0 {
		return fmt.Errorf("sqlite storage: trim limit must be >= 0")
	}
	if _, err := s.db.ExecContext(context.Background(), trimItemsSQL, max); err != nil {
		return fmt.Errorf("sqlite storage: trim items: %w", err)
	}
	return nil
}

// Count returns the number of stored items.
func (s *SQLiteStorage) Count() (int, error) {
	var n int
	if err := s.db.QueryRowContext(context.Background(), countItemsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite storage: count items: %w", err)
	}
	return n, nil
}
