// Package search filters clipboard history items. The substring, regex and
// token strategies share the Provider interface so the CLI and the TUI
// filter the same way.
package search

import (
	"strings"

	"github.com/cristianoliveira/cliptray/internal/history"
)

// Searchable item fields.
const (
	FieldText    = "text"
	FieldPreview = "preview"
	FieldType    = "type"
)

// Provider decides whether an item matches a query.
type Provider interface {
	// Match returns true if the item matches the search query.
	Match(item history.Item, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: all fields)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{FieldText, FieldPreview, FieldType},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "text", "preview", "type".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Filter returns the items that match query, keeping their order.
func Filter(items []history.Item, provider Provider, query string) []history.Item {
	if strings.TrimSpace(query) == "" {
		return items
	}
	out := make([]history.Item, 0, len(items))
	for _, item := range items {
		if provider.Match(item, query) {
			out = append(out, item)
		}
	}
	return out
}

// fieldValue returns the searchable value of field. Images have no text,
// so only their preview and type are searchable.
func fieldValue(item history.Item, field string) string {
	switch field {
	case FieldText:
		if item.Type == history.TypeImage {
			return ""
		}
		return item.Text
	case FieldPreview:
		return item.Preview
	case FieldType:
		return item.Type.String()
	default:
		return ""
	}
}
