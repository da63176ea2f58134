/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/cristianoliveira/cliptray/internal/clip"
	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/logging"
	"github.com/spf13/cobra"
)

const copyCommandLong = `Copy a history item back to the clipboard.

The item moves to the top of the history.

USAGE:
    cliptray copy <id>

ARGUMENTS:
    <id>    Item ID or a unique prefix of it, as printed by 'cliptray list'`

// NewCopyCmd creates the copy command with explicit dependencies.
func NewCopyCmd(open historyOpener, connect clipboardFactory) *cobra.Command {
	if open == nil || connect == nil {
		panic("NewCopyCmd: dependencies cannot be nil")
	}

	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a history item to the clipboard",
		Long:  copyCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, closeHistory, err := open()
			if err != nil {
				return fmt.Errorf("copy: open history: %w", err)
			}
			defer closeHistory()

			item, err := resolveItem(manager, args[0])
			if err != nil {
				return fmt.Errorf("copy: %w", err)
			}

			backend := connect()
			defer backend.Close()
			if err := clip.Restore(backend, item); err != nil {
				return fmt.Errorf("copy: %w", err)
			}

			item.Timestamp = time.Now()
			if err := manager.Add(item); err != nil && !errors.Is(err, history.ErrDuplicate) {
				logging.Warn("history reorder failed", "error", err.Error())
			}
			colors.Success("Copied to clipboard")
			return nil
		},
	}
}
