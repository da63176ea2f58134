package tray

import (
	"fmt"
	"strings"
)

// Event is a normalized intent derived from raw input.
type Event int

const (
	EventToggleDropdown Event = iota
	EventDismissDropdown
	EventOpenFullView
	EventCloseFullView
)

// String returns the event name used in logs.
func (e Event) String() string {
	switch e {
	case EventToggleDropdown:
		return "toggle-dropdown"
	case EventDismissDropdown:
		return "dismiss-dropdown"
	case EventOpenFullView:
		return "open-full-view"
	case EventCloseFullView:
		return "close-full-view"
	default:
		return "unknown"
	}
}

// KeyEscape is the normalized name of the Escape key.
const KeyEscape = "escape"

// KeyEvent is a key press after the host stripped terminal specifics.
// Primary is the platform command/control modifier.
type KeyEvent struct {
	Key     string
	Primary bool
	Shift   bool
	Alt     bool

	defaultPrevented bool
}

// PreventDefault stops the host from handing the key to focused widgets.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a rule consumed the key.
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Chord is a modifier combination bound to a single key.
type Chord struct {
	Key     string
	Primary bool
	Shift   bool
	Alt     bool
}

// DefaultChord is primary+shift+v.
var DefaultChord = Chord{Key: "v", Primary: true, Shift: true}

// ParseChord parses chords such as "ctrl+shift+v" or "cmd+shift+v".
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return Chord{}, fmt.Errorf("invalid chord %q: need at least one modifier and a key", s)
	}

	var c Chord
	for _, mod := range parts[:len(parts)-1] {
		switch strings.TrimSpace(mod) {
		case "ctrl", "control", "cmd", "command", "super", "meta", "primary":
			c.Primary = true
		case "shift":
			c.Shift = true
		case "alt", "option", "opt":
			c.Alt = true
		default:
			return Chord{}, fmt.Errorf("invalid chord %q: unknown modifier %q", s, mod)
		}
	}
	c.Key = strings.TrimSpace(parts[len(parts)-1])
	if c.Key == "" {
		return Chord{}, fmt.Errorf("invalid chord %q: missing key", s)
	}
	return c, nil
}

// String renders the chord the way ParseChord accepts it.
func (c Chord) String() string {
	var parts []string
	if c.Primary {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, c.Key), "+")
}

// Matches reports whether the key event is exactly this chord.
func (c Chord) Matches(e KeyEvent) bool {
	if c.Key == "" || !strings.EqualFold(e.Key, c.Key) {
		return false
	}
	return e.Primary == c.Primary && e.Shift == c.Shift && e.Alt == c.Alt
}

// Bridge turns document clicks and key presses into logical events.
type Bridge struct {
	emit  func(Event)
	chord Chord
}

func newBridge(emit func(Event), chord Chord) *Bridge {
	return &Bridge{emit: emit, chord: chord}
}

// Chord returns the shortcut that toggles the dropdown.
func (b *Bridge) Chord() Chord {
	return b.chord
}

// OnDocumentClick dismisses the dropdown. It is only subscribed while the
// dropdown is open and deliberately ignores the click target.
func (b *Bridge) OnDocumentClick(ClickEvent) {
	b.emit(EventDismissDropdown)
}

// OnKeyDown applies the keyboard rules and reports whether the key was
// consumed. Unknown keys are ignored.
func (b *Bridge) OnKeyDown(e *KeyEvent) bool {
	if e == nil {
		return false
	}

	if b.chord.Matches(*e) {
		e.PreventDefault()
		b.emit(EventToggleDropdown)
	}

	if isEscape(e.Key) {
		b.emit(EventDismissDropdown)
		b.emit(EventCloseFullView)
	}

	return e.DefaultPrevented()
}

func isEscape(key string) bool {
	switch strings.ToLower(key) {
	case KeyEscape, "esc":
		return true
	}
	return false
}
