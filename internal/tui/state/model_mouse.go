package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/cliptray/internal/tray"
)

// Click targets reported in tray.ClickEvent.Target.
const (
	TargetTrigger          = "trigger"
	TargetDropdownItem     = "dropdown-item"
	TargetDropdownOpenFull = "dropdown-open-full"
	TargetDropdownClose    = "dropdown-close"
	TargetFullViewClose    = "full-view-close"
	TargetFullViewItem     = "full-view-item"
)

// hitRegion is a clickable span of one screen row. x1 is exclusive; a
// zero x1 spans the whole row.
type hitRegion struct {
	y      int
	x0, x1 int
	target string
	action func() tea.Cmd
}

func (h hitRegion) contains(x, y int) bool {
	if y != h.y || x < h.x0 {
		return false
	}
	return h.x1 == 0 || x < h.x1
}

func (m *Model) hitAt(x, y int) (hitRegion, bool) {
	for i := len(m.hits) - 1; i >= 0; i-- {
		if m.hits[i].contains(x, y) {
			return m.hits[i], true
		}
	}
	return hitRegion{}, false
}

// handleMouse dispatches a left press through the document so the target
// handler runs before the document-level dismissal. The wheel moves the
// full-view selection.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.ctrl.State().FullViewOpen {
			m.moveCursor(-1)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if m.ctrl.State().FullViewOpen {
			m.moveCursor(1)
		}
		return nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	event := tray.ClickEvent{X: msg.X, Y: msg.Y}
	var cmd tea.Cmd
	var target func()
	if hit, ok := m.hitAt(msg.X, msg.Y); ok {
		event.Target = hit.target
		if hit.action != nil {
			target = func() { cmd = hit.action() }
		}
	}
	m.doc.Dispatch(event, target)
	return cmd
}
