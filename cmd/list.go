/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/cristianoliveira/cliptray/internal/config"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/search"
	"github.com/cristianoliveira/cliptray/internal/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// shortIDLength is how many ID characters list prints; copy accepts any
// unique prefix.
const shortIDLength = 8

const listCommandLong = `List clipboard history, newest first.

History survives between runs only with storage_backend = "sqlite".

USAGE:
    cliptray list [OPTIONS]

OPTIONS:
    --limit <n>          Show at most n items (0 shows all)
    --search <query>     Case-insensitive match on text, preview and type
    --regex              Treat --search as a regular expression
    --ids                Print full item IDs
    -h, --help           Show this help`

// ListOptions controls list output.
type ListOptions struct {
	Limit   int
	Search  string
	Regex   bool
	FullIDs bool
	Now     time.Time
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(open historyOpener) *cobra.Command {
	if open == nil {
		panic("NewListCmd: history dependency cannot be nil")
	}

	var opts ListOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clipboard history",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Limit < 0 {
				return fmt.Errorf("list: --limit must not be negative")
			}
			if opts.Regex {
				if err := search.ValidatePattern(opts.Search); err != nil {
					return fmt.Errorf("list: %w", err)
				}
			}
			manager, closeHistory, err := open()
			if err != nil {
				return fmt.Errorf("list: open history: %w", err)
			}
			defer closeHistory()

			opts.Now = time.Now()
			if manager.Count() == 0 && isMemoryBackend() {
				colors.Info(`history is kept in memory; set storage_backend = "sqlite" to list past sessions`)
			}
			PrintList(cmd.OutOrStdout(), manager, opts)
			return nil
		},
	}

	listCmd.Flags().IntVar(&opts.Limit, "limit", 0, "Show at most n items (0 shows all)")
	listCmd.Flags().StringVar(&opts.Search, "search", "", "Case-insensitive match on text, preview and type")
	listCmd.Flags().BoolVar(&opts.Regex, "regex", false, "Treat --search as a regular expression")
	listCmd.Flags().BoolVar(&opts.FullIDs, "ids", false, "Print full item IDs")

	return listCmd
}

// PrintList writes one line per item: id, type, size, age and preview.
func PrintList(w io.Writer, manager *history.Manager, opts ListOptions) {
	items := search.Filter(manager.Items(), listProvider(opts), opts.Search)
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "No clipboard history")
		return
	}
	for _, item := range items {
		id := item.ID
		if !opts.FullIDs && len(id) > shortIDLength {
			id = id[:shortIDLength]
		}
		fmt.Fprintf(w, "%s  %-5s  %8s  %-14s  %s\n",
			id,
			item.Type,
			humanize.Bytes(uint64(item.Size())),
			item.RelativeTime(opts.Now),
			singleLine(item.Preview),
		)
	}
}

func listProvider(opts ListOptions) search.Provider {
	if opts.Regex {
		return search.NewRegexProvider(search.WithCaseInsensitive(true))
	}
	return search.NewSubstringProvider(search.WithCaseInsensitive(true))
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isMemoryBackend() bool {
	backend := strings.ToLower(strings.TrimSpace(config.Get("storage_backend", storage.BackendMemory)))
	return backend == "" || backend == storage.BackendMemory
}

// resolveItem finds an item by full ID or unique ID prefix.
func resolveItem(manager *history.Manager, ref string) (history.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return history.Item{}, history.ErrInvalidItemID
	}
	if item, err := manager.Get(ref); err == nil {
		return item, nil
	}

	var matches []history.Item
	for _, item := range manager.Items() {
		if strings.HasPrefix(item.ID, ref) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return history.Item{}, fmt.Errorf("%w: %s", history.ErrItemNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return history.Item{}, fmt.Errorf("ambiguous item ID %q matches %d items", ref, len(matches))
	}
}
