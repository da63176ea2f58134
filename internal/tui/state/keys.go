package state

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/cliptray/internal/tray"
)

// KeyMap defines the key bindings of the tray surfaces. The dropdown
// shortcut and Escape are not listed here: they go through the tray bridge.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Closed state.
	Activate key.Binding // Toggle the dropdown from the trigger.
	OpenFull key.Binding // Jump straight to the full view.
	Quit     key.Binding

	// Dropdown and full view.
	Select key.Binding

	// Full view.
	Search     key.Binding
	SearchDone key.Binding
	Delete     key.Binding
	Clear      key.Binding
	Close      key.Binding
	DetailUp   key.Binding
	DetailDown key.Binding

	// Clear confirmation.
	Confirm key.Binding

	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "open"),
	),
	OpenFull: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "clipboard manager"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SearchDone: key.NewBinding(
		key.WithKeys("enter", "tab"),
		key.WithHelp("enter", "done"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Clear: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear all"),
	),
	Close: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "close"),
	),
	DetailUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "scroll detail up"),
	),
	DetailDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "scroll detail down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// keyEvent converts a terminal key into the host-neutral form the tray
// bridge understands.
//
// Terminals encode ctrl+letter as a single control byte, so shift is never
// reported together with ctrl. For such keys Shift is taken from the chord,
// which makes ctrl+v activate a ctrl+shift+v shortcut.
func keyEvent(msg tea.KeyMsg, chord tray.Chord) tray.KeyEvent {
	if msg.Type == tea.KeyEsc {
		return tray.KeyEvent{Key: tray.KeyEscape, Alt: msg.Alt}
	}

	var ev tray.KeyEvent
	name := msg.String()
	for stripped := true; stripped; {
		switch {
		case strings.HasPrefix(name, "alt+") && len(name) > len("alt+"):
			ev.Alt = true
			name = strings.TrimPrefix(name, "alt+")
		case strings.HasPrefix(name, "ctrl+") && len(name) > len("ctrl+"):
			ev.Primary = true
			name = strings.TrimPrefix(name, "ctrl+")
		case strings.HasPrefix(name, "shift+") && len(name) > len("shift+"):
			ev.Shift = true
			name = strings.TrimPrefix(name, "shift+")
		default:
			stripped = false
		}
	}

	if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsLetter(r) {
		if unicode.IsUpper(r) {
			ev.Shift = true
			name = string(unicode.ToLower(r))
		}
		if ev.Primary {
			ev.Shift = chord.Shift
		}
	}
	ev.Key = name
	return ev
}
