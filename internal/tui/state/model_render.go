package state

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/tui/render"
)

var (
	dropdownStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const dropdownMaxWidth = 60

// screen accumulates rendered lines and the hit regions that point into
// them.
type screen struct {
	lines []string
	hits  []hitRegion
}

func (s *screen) y() int { return len(s.lines) }

func (s *screen) add(block string) {
	s.lines = append(s.lines, strings.Split(block, "\n")...)
}

func (s *screen) hit(h hitRegion) {
	s.hits = append(s.hits, h)
}

// View renders the trigger, the open surface, the footer and any toast.
func (m *Model) View() string {
	s := &screen{}
	state := m.ctrl.State()

	props := m.ctrl.TriggerProps()
	trigger := render.Trigger(props.ItemCount, props.Active, m.ctrl.Bridge().Chord().String())
	s.hit(hitRegion{
		y: s.y(), x0: 0, x1: lipgloss.Width(render.Trigger(props.ItemCount, props.Active, "")),
		target: TargetTrigger,
		action: func() tea.Cmd { m.ctrl.TriggerProps().OnActivate(); return nil },
	})
	s.add(trigger)

	switch {
	case state.FullViewOpen:
		m.renderFullView(s)
	case state.DropdownOpen:
		m.renderDropdown(s)
	}

	s.add(render.Footer(render.FooterState{
		FullView:     state.FullViewOpen,
		Dropdown:     state.DropdownOpen,
		SearchFocus:  m.search.Focused(),
		ConfirmClear: m.confirmClear,
		Shortcut:     m.ctrl.Bridge().Chord().String(),
	}))
	if msg, ok := m.errorHandler.Active(m.toastDuration); ok {
		s.add(render.Toast(msg))
	}

	m.hits = s.hits
	return strings.Join(s.lines, "\n")
}

func (m *Model) preview(item history.Item) history.Item {
	item.Preview = item.PreviewN(m.previewLength)
	return item
}

// renderDropdown draws the bordered overlay. Row i of the content sits at
// y+1+i because of the top border.
func (m *Model) renderDropdown(s *screen) {
	width := min(m.viewWidth(), dropdownMaxWidth)
	inner := width - dropdownStyle.GetHorizontalFrameSize()
	now := m.now()
	recent := m.history.Recent(m.dropdownItems)

	top := s.y() + 1
	var rows []string
	if len(recent) == 0 {
		rows = append(rows, render.Empty("No clipboard history yet"))
	}
	for i, item := range recent {
		idx := i
		s.hit(hitRegion{
			y: top + len(rows), x1: width, target: TargetDropdownItem,
			action: func() tea.Cmd { return m.activateDropdownRow(idx) },
		})
		rows = append(rows, render.DropdownRow(m.preview(item), m.dropdownCursor == i, inner, now))
	}

	props := m.ctrl.DropdownProps()
	s.hit(hitRegion{
		y: top + len(rows), x1: width, target: TargetDropdownOpenFull,
		action: func() tea.Cmd { props.OnOpenFullView(); return nil },
	})
	rows = append(rows, render.ActionRow(render.OpenFullViewLabel, m.dropdownCursor == len(recent)))
	s.hit(hitRegion{
		y: top + len(rows), x1: width, target: TargetDropdownClose,
		action: func() tea.Cmd { props.OnClose(); return nil },
	})
	rows = append(rows, render.ActionRow(render.CloseLabel, m.dropdownCursor == len(recent)+1))

	s.add(dropdownStyle.Width(width - dropdownStyle.GetHorizontalBorderSize()).Render(strings.Join(rows, "\n")))
}

func (m *Model) renderFullView(s *screen) {
	width := m.viewWidth()
	now := m.now()

	title, closeX := render.TitleBar(len(m.history.Items()), width)
	props := m.ctrl.FullViewProps()
	s.hit(hitRegion{
		y: s.y(), x0: closeX, x1: closeX + lipgloss.Width(render.CloseControl),
		target: TargetFullViewClose,
		action: func() tea.Cmd { props.OnClose(); return nil },
	})
	s.add(title)

	m.search.Width = max(10, width-lipgloss.Width(m.search.Prompt)-1)
	s.add(m.search.View())

	height := m.listHeight()
	if len(m.filtered) == 0 {
		empty := "No clipboard history yet"
		if m.search.Value() != "" {
			empty = "No items match the search"
		}
		s.add(render.Empty(empty))
		height--
	}
	end := min(len(m.filtered), m.listOffset+height)
	for i := m.listOffset; i < end; i++ {
		idx := i
		s.hit(hitRegion{
			y: s.y(), target: TargetFullViewItem,
			action: func() tea.Cmd { m.cursor = idx; m.ensureCursorVisible(); m.syncDetail(); return nil },
		})
		s.add(render.Row(render.RowState{
			Item:     m.preview(m.filtered[i]),
			Selected: i == m.cursor,
			Width:    width,
			Now:      now,
		}))
	}
	for i := end - m.listOffset; i < height; i++ {
		s.add("")
	}

	separator := separatorStyle.Render(strings.Repeat("─", width))
	s.add(separator)
	s.add(m.detail.View())
	s.add(separator)
}
