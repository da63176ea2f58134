// Package tray owns the interaction state of the clipboard tray.
//
// The package decides whether the compact dropdown or the full clipboard
// view is visible, maps keyboard and pointer input onto those decisions and
// hands narrow callbacks to the presentational surfaces. It renders nothing
// and never touches the clipboard itself.
package tray

// Mode is the visible surface derived from an InteractionState.
type Mode int

const (
	// ModeClosed means only the trigger is visible.
	ModeClosed Mode = iota
	// ModeDropdownOpen means the compact history overlay is visible.
	ModeDropdownOpen
	// ModeFullViewOpen means the full clipboard browser is visible.
	ModeFullViewOpen
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeDropdownOpen:
		return "dropdown"
	case ModeFullViewOpen:
		return "full-view"
	default:
		return "unknown"
	}
}

// InteractionState is the single source of truth for tray visibility.
// DropdownOpen and FullViewOpen are never both true.
type InteractionState struct {
	DropdownOpen bool
	FullViewOpen bool
	// ItemCount is supplied from outside and only forwarded to the trigger.
	ItemCount int
}

// Mode returns the surface that is currently visible.
func (s InteractionState) Mode() Mode {
	switch {
	case s.FullViewOpen:
		return ModeFullViewOpen
	case s.DropdownOpen:
		return ModeDropdownOpen
	default:
		return ModeClosed
	}
}

// Valid reports whether the state satisfies the mutual exclusion of the two views.
func (s InteractionState) Valid() bool {
	return !(s.DropdownOpen && s.FullViewOpen)
}
