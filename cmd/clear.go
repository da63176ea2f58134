/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/spf13/cobra"
)

const clearCommandLong = `Remove every item from the clipboard history.

USAGE:
    cliptray clear [OPTIONS]

OPTIONS:
    -y, --yes     Do not ask for confirmation
    -h, --help    Show this help`

// NewClearCmd creates the clear command with explicit dependencies.
func NewClearCmd(open historyOpener) *cobra.Command {
	if open == nil {
		panic("NewClearCmd: history dependency cannot be nil")
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear clipboard history",
		Long:  clearCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Skip confirmation in CI
			if !yes && os.Getenv("CI") == "" && !confirmClear(cmd.InOrStdin(), cmd.OutOrStdout()) {
				colors.Info("Operation cancelled")
				return nil
			}

			manager, closeHistory, err := open()
			if err != nil {
				return fmt.Errorf("clear: open history: %w", err)
			}
			defer closeHistory()

			if err := manager.Clear(); err != nil {
				return fmt.Errorf("clear: failed to clear history: %w", err)
			}
			colors.Success("Clipboard history cleared")
			return nil
		},
	}

	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return clearCmd
}

// confirmClear asks before clearing. Anything but y/yes is a no.
func confirmClear(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Are you sure you want to clear the clipboard history? (y/N): ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
