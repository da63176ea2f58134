// Package render draws the tray surfaces as plain strings.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/cristianoliveira/cliptray/internal/errors"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/dustin/go-humanize"
)

const (
	// CloseControl is the full view's close button label.
	CloseControl = "[x]"
	// OpenFullViewLabel is the dropdown row that opens the full view.
	OpenFullViewLabel = "Open Clipboard Manager"
	// CloseLabel is the dropdown row that closes the dropdown.
	CloseLabel = "Close"

	badgeWidth     = 6
	sizeWidth      = 8
	ageWidth       = 14
	minTextWidth   = 10
	defaultWidth   = 80
	selectedMarker = "▸"
)

var (
	accentColor = lipgloss.Color(ansiColorNumber(colors.Blue))
	mutedColor  = lipgloss.Color("241")

	triggerStyle       = lipgloss.NewStyle().Padding(0, 1)
	triggerActiveStyle = triggerStyle.Bold(true).Reverse(true)
	hintStyle          = lipgloss.NewStyle().Foreground(mutedColor)
	selectedStyle      = lipgloss.NewStyle().Background(accentColor).Foreground(lipgloss.Color("0"))
	actionStyle        = lipgloss.NewStyle().Foreground(accentColor)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	emptyStyle         = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	badgeColors = map[history.Type]lipgloss.Color{
		history.TypeText:  lipgloss.Color("252"),
		history.TypeImage: lipgloss.Color("213"),
		history.TypeHTML:  lipgloss.Color("208"),
		history.TypeURL:   lipgloss.Color("39"),
		history.TypeFile:  lipgloss.Color("178"),
		history.TypeCode:  lipgloss.Color("114"),
	}

	toastColors = map[errors.MessageType]lipgloss.Color{
		errors.MessageTypeError:   lipgloss.Color("196"),
		errors.MessageTypeWarning: lipgloss.Color("214"),
		errors.MessageTypeInfo:    lipgloss.Color("39"),
		errors.MessageTypeSuccess: lipgloss.Color("42"),
	}
)

// Trigger renders the always-visible entry point.
func Trigger(count int, active bool, hint string) string {
	label := fmt.Sprintf("📋 %d %s", count, pluralItems(count))
	style := triggerStyle
	if active {
		style = triggerActiveStyle
	}
	out := style.Render(label)
	if hint != "" {
		out += " " + hintStyle.Render(hint)
	}
	return out
}

func pluralItems(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}

// DropdownRow renders one history item in the compact overlay.
func DropdownRow(item history.Item, selected bool, width int, now time.Time) string {
	age := item.RelativeTime(now)
	textWidth := max(minTextWidth, width-ageWidth-4)
	line := fmt.Sprintf("%s %-*s %*s",
		marker(selected),
		textWidth, fit(item.Preview, textWidth),
		ageWidth, age,
	)
	return rowStyle(selected).Render(line)
}

// ActionRow renders a dropdown command such as OpenFullViewLabel.
func ActionRow(label string, selected bool) string {
	line := marker(selected) + " " + label
	if selected {
		return selectedStyle.Render(line)
	}
	return actionStyle.Render(line)
}

// Empty renders the placeholder shown when there is nothing to list.
func Empty(text string) string {
	return emptyStyle.Render(text)
}

// RowState defines the inputs needed to render a full-view list row.
type RowState struct {
	Item     history.Item
	Selected bool
	Width    int
	Now      time.Time
}

// Row renders a single full-view list row: badge, preview, size and age.
func Row(state RowState) string {
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}
	textWidth := max(minTextWidth, width-badgeWidth-sizeWidth-ageWidth-6)

	line := fmt.Sprintf("%s %s %-*s %*s %*s",
		marker(state.Selected),
		TypeBadge(state.Item.Type),
		textWidth, fit(state.Item.Preview, textWidth),
		sizeWidth, humanize.Bytes(uint64(state.Item.Size())),
		ageWidth, state.Item.RelativeTime(state.Now),
	)
	return rowStyle(state.Selected).Render(line)
}

// TypeBadge renders the fixed-width type label.
func TypeBadge(t history.Type) string {
	label := fmt.Sprintf("%-*s", badgeWidth, fit(t.String(), badgeWidth))
	color, ok := badgeColors[t]
	if !ok {
		color = mutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(label)
}

// TitleBar renders the full-view header padded to width with the close
// control flush right. closeX is the column where the control starts.
func TitleBar(count, width int) (line string, closeX int) {
	if width <= 0 {
		width = defaultWidth
	}
	title := titleStyle.Render(fmt.Sprintf("Clipboard Manager · %d %s", count, pluralItems(count)))
	gap := max(1, width-lipgloss.Width(title)-lipgloss.Width(CloseControl))
	line = title + strings.Repeat(" ", gap) + CloseControl
	return line, lipgloss.Width(line) - lipgloss.Width(CloseControl)
}

// Detail renders the full content of item for the detail pane.
func Detail(item history.Item, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		TypeBadge(item.Type),
		humanize.Bytes(uint64(item.Size())),
		hintStyle.Render(item.Timestamp.Format("2006-01-02 15:04:05")+" ("+item.RelativeTime(now)+")"),
	)
	b.WriteString("\n")
	if item.Type == history.TypeImage {
		fmt.Fprintf(&b, "%dx%d PNG image, %s bytes", item.ImageWidth, item.ImageHeight, humanize.Comma(int64(len(item.Data))))
		return b.String()
	}
	b.WriteString(item.Text)
	return b.String()
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	FullView     bool
	Dropdown     bool
	SearchFocus  bool
	ConfirmClear bool
	Shortcut     string
}

// Footer renders context-sensitive key help.
func Footer(state FooterState) string {
	var help string
	switch {
	case state.ConfirmClear:
		help = "Clear all history? y: yes  n: no"
	case state.SearchFocus:
		help = "type to filter  enter: done  esc: close"
	case state.FullView:
		help = "j/k: move  enter: copy  /: search  d: delete  C: clear  x/esc: close"
	case state.Dropdown:
		help = "j/k: move  enter: select  esc: close"
	default:
		help = "enter: open  " + state.Shortcut + ": toggle  q: quit"
	}
	return hintStyle.Render(help)
}

// Toast renders a transient status message.
func Toast(msg errors.Message) string {
	color, ok := toastColors[msg.Type]
	if !ok {
		color = mutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(msg.Type.String() + ": " + msg.Text)
}

func marker(selected bool) string {
	if selected {
		return selectedMarker
	}
	return " "
}

func rowStyle(selected bool) lipgloss.Style {
	if selected {
		return selectedStyle
	}
	return lipgloss.NewStyle()
}

// fit truncates s to width display cells, ending in "..." when cut.
func fit(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", max(0, width))
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// ansiColorNumber extracts the SGR color number from an escape sequence
// such as "\033[0;34m".
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
