package state

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/cliptray/internal/tray"
)

// handleKeyMsg processes keyboard input. The tray bridge sees every key
// first; a key it consumes never reaches the surfaces.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	chord := m.ctrl.Bridge().Chord()
	if m.search.Focused() {
		// ctrl+v pastes into the search box; only a chord without shift
		// can toggle from here.
		chord.Shift = false
	}
	ev := keyEvent(msg, chord)
	if m.ctrl.Bridge().OnKeyDown(&ev) {
		return m, nil
	}
	if ev.Key == tray.KeyEscape {
		return m, nil
	}

	switch m.ctrl.State().Mode() {
	case tray.ModeFullViewOpen:
		return m, m.handleFullViewKey(msg)
	case tray.ModeDropdownOpen:
		return m, m.handleDropdownKey(msg)
	default:
		return m.handleClosedKey(msg)
	}
}

func (m *Model) handleClosedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Activate):
		m.ctrl.TriggerProps().OnActivate()
	case key.Matches(msg, m.keys.OpenFull):
		m.ctrl.OpenFullView()
	}
	return m, nil
}

// dropdownRows is the number of selectable dropdown rows: the recent
// items followed by the open-full-view and close actions.
func (m *Model) dropdownRows() int {
	return len(m.history.Recent(m.dropdownItems)) + 2
}

func (m *Model) handleDropdownKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.dropdownCursor = max(0, m.dropdownCursor-1)
	case key.Matches(msg, m.keys.Down):
		m.dropdownCursor = min(m.dropdownRows()-1, m.dropdownCursor+1)
	case key.Matches(msg, m.keys.OpenFull):
		m.ctrl.DropdownProps().OnOpenFullView()
	case key.Matches(msg, m.keys.Select):
		return m.activateDropdownRow(m.dropdownCursor)
	}
	return nil
}

// activateDropdownRow runs the action of row idx.
func (m *Model) activateDropdownRow(idx int) tea.Cmd {
	recent := m.history.Recent(m.dropdownItems)
	props := m.ctrl.DropdownProps()
	switch {
	case idx >= 0 && idx < len(recent):
		cmd := m.restore(recent[idx])
		props.OnClose()
		return cmd
	case idx == len(recent):
		props.OnOpenFullView()
	case idx == len(recent)+1:
		props.OnClose()
	}
	return nil
}

func (m *Model) handleFullViewKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirmClear {
		if key.Matches(msg, m.keys.Confirm) {
			return m.clearHistory()
		}
		m.confirmClear = false
		return nil
	}

	if m.search.Focused() {
		if key.Matches(msg, m.keys.SearchDone) {
			m.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		m.listOffset = 0
		m.refilter()
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		if item, ok := m.selected(); ok {
			return m.restore(item)
		}
	case key.Matches(msg, m.keys.Search):
		return m.search.Focus()
	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelected()
	case key.Matches(msg, m.keys.Clear):
		if m.history.Count() > 0 {
			m.confirmClear = true
		}
	case key.Matches(msg, m.keys.Close):
		m.ctrl.FullViewProps().OnClose()
	case key.Matches(msg, m.keys.DetailUp):
		m.detail.HalfViewUp()
	case key.Matches(msg, m.keys.DetailDown):
		m.detail.HalfViewDown()
	}
	return nil
}
