/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/cliptray/internal/clip"
	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/cristianoliveira/cliptray/internal/config"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/logging"
	"github.com/cristianoliveira/cliptray/internal/tray"
	"github.com/cristianoliveira/cliptray/internal/tui/state"
	"github.com/spf13/cobra"
)

const trayCommandLong = `Open the clipboard tray.

The tray watches the clipboard and keeps a history of what was copied.

USAGE:
    cliptray tray

KEY BINDINGS:
    ctrl+shift+v  Toggle the dropdown (configurable with "shortcut")
    enter         Open the dropdown / copy the selected item
    o             Open the clipboard manager
    j/k           Move up/down
    /             Search (clipboard manager)
                  While searching, ctrl+v pastes instead of toggling
    d             Delete the selected item (clipboard manager)
    C             Clear history (clipboard manager)
    esc           Close the dropdown or the clipboard manager
    q             Quit (when everything is closed)`

// programRunner runs a bubbletea program until it exits.
type programRunner func(p *tea.Program) error

var runProgram programRunner = func(p *tea.Program) error {
	_, err := p.Run()
	return err
}

// NewTrayCmd creates the tray command with explicit dependencies.
func NewTrayCmd(open historyOpener, connect clipboardFactory) *cobra.Command {
	if open == nil || connect == nil {
		panic("NewTrayCmd: dependencies cannot be nil")
	}

	return &cobra.Command{
		Use:   "tray",
		Short: "Open the clipboard tray (default)",
		Long:  trayCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(cmd, open, connect)
		},
	}
}

func runTray(cmd *cobra.Command, open historyOpener, connect clipboardFactory) error {
	manager, closeHistory, err := open()
	if err != nil {
		return fmt.Errorf("tray: open history: %w", err)
	}
	defer func() {
		if err := closeHistory(); err != nil {
			logging.Warn("history close failed", "error", err.Error())
		}
	}()

	backend := connect()
	defer backend.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var program *tea.Program
	watcher := clip.NewWatcher(backend, func(item history.Item) {
		program.Send(state.ItemCapturedMsg{Item: item})
	}, clip.WithDebounce(millis("debounce_ms", clip.DefaultDebounce)))

	model := state.NewModel(trayOptions(manager, watcher))
	defer model.Close()

	program = tea.NewProgram(model, programOptions(ctx)...)
	logging.Info("tray started", "clipboard", backend.Name(), "items", manager.Count())

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Error("clipboard watcher stopped", "error", err.Error())
		}
	}()

	runErr := runProgram(program)
	cancel()
	<-watchDone

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tray: %w", runErr)
	}
	logging.Info("tray stopped", "items", manager.Count())
	return nil
}

// trayOptions builds the model options from configuration.
func trayOptions(manager *history.Manager, restorer state.Restorer) state.Options {
	return state.Options{
		History:       manager,
		Restorer:      restorer,
		Chord:         shortcutChord(config.Get("shortcut", tray.DefaultChord.String())),
		DropdownItems: config.GetInt("dropdown_items", 0),
		PreviewLength: config.GetInt("preview_length", history.DefaultPreviewLength),
		ToastDuration: time.Duration(config.GetInt("toast_seconds", 0)) * time.Second,
		Logger:        logging.With("component", "tui"),
	}
}

// shortcutChord parses the configured shortcut, falling back to the default.
func shortcutChord(shortcut string) tray.Chord {
	chord, err := tray.ParseChord(shortcut)
	if err != nil {
		colors.Warning(fmt.Sprintf("invalid shortcut %q: %v, using %s", shortcut, err, tray.DefaultChord))
		return tray.DefaultChord
	}
	return chord
}

func programOptions(ctx context.Context) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if config.GetBool("mouse_enabled", true) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}
