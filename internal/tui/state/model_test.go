package state

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/tray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRestorer struct {
	restored []history.Item
	err      error
}

func (f *fakeRestorer) Restore(item history.Item) error {
	if f.err != nil {
		return f.err
	}
	f.restored = append(f.restored, item)
	return nil
}

func newTestModel(t *testing.T, texts ...string) (*Model, *history.Manager, *fakeRestorer) {
	t.Helper()
	manager, err := history.NewManager()
	require.NoError(t, err)
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range texts {
		require.NoError(t, manager.Add(history.NewTextItem(text, base.Add(time.Duration(i)*time.Second))))
	}
	restorer := &fakeRestorer{}
	m := NewModel(Options{
		History:  manager,
		Restorer: restorer,
		Now:      func() time.Time { return base.Add(time.Minute) },
	})
	t.Cleanup(m.Close)
	return m, manager, restorer
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	ctrlV = tea.KeyMsg{Type: tea.KeyCtrlV}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func click(m *Model, x, y int) tea.Cmd {
	m.View()
	return press(m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

func mode(m *Model) tray.Mode {
	return m.Controller().State().Mode()
}

func TestNewModelInitialState(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b")

	assert.Nil(t, m.Init())
	assert.Equal(t, tray.InteractionState{ItemCount: 2}, m.Controller().State())
	assert.Contains(t, m.View(), "📋 2 items")
	assert.Zero(t, m.Document().Listeners())
}

func TestShortcutTogglesDropdown(t *testing.T) {
	m, _, _ := newTestModel(t, "a")

	press(m, ctrlV)
	assert.Equal(t, tray.ModeDropdownOpen, mode(m))
	assert.Equal(t, 1, m.Document().Listeners())

	press(m, ctrlV)
	assert.Equal(t, tray.ModeClosed, mode(m))
	assert.Zero(t, m.Document().Listeners())
}

func TestShortcutFromFullViewOpensDropdown(t *testing.T) {
	m, _, _ := newTestModel(t, "a")
	press(m, runes("o"))
	require.Equal(t, tray.ModeFullViewOpen, mode(m))

	press(m, ctrlV)

	assert.Equal(t, tray.InteractionState{DropdownOpen: true, ItemCount: 1}, m.Controller().State())
}

func TestCtrlVPastesWhileSearching(t *testing.T) {
	m, _, _ := newTestModel(t, "a")
	press(m, runes("o"), runes("/"))
	require.True(t, m.search.Focused())

	press(m, ctrlV)

	assert.Equal(t, tray.InteractionState{FullViewOpen: true, ItemCount: 1}, m.Controller().State())
	assert.True(t, m.search.Focused())

	press(m, esc)
	assert.Equal(t, tray.ModeClosed, mode(m))
}

func TestEscapeClosesAnySurface(t *testing.T) {
	m, _, _ := newTestModel(t, "a")

	press(m, enter, esc)
	assert.Equal(t, tray.ModeClosed, mode(m))

	press(m, runes("o"), esc)
	assert.Equal(t, tray.ModeClosed, mode(m))

	press(m, esc)
	assert.Equal(t, tray.ModeClosed, mode(m))
}

func TestQuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	press(m, runes("o"))
	assert.Nil(t, press(m, runes("q")), "q does not quit from the full view")

	cmd = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDropdownSelectRestoresItem(t *testing.T) {
	m, manager, restorer := newTestModel(t, "older", "newer")

	press(m, enter, down, enter)

	require.Len(t, restorer.restored, 1)
	assert.Equal(t, "older", restorer.restored[0].Text)
	assert.Equal(t, tray.ModeClosed, mode(m))
	assert.Equal(t, "older", manager.Items()[0].Text, "restored item moves to the front")
	assert.Contains(t, m.View(), "Copied to clipboard")
}

func TestDropdownRestoreFailureShowsToast(t *testing.T) {
	m, _, restorer := newTestModel(t, "a")
	restorer.err = errors.New("no display")

	press(m, enter, enter)

	assert.Contains(t, m.View(), "Copy failed: no display")
}

func TestDropdownActionRows(t *testing.T) {
	m, _, _ := newTestModel(t, "a")

	press(m, enter, down, enter)
	assert.Equal(t, tray.InteractionState{FullViewOpen: true, ItemCount: 1}, m.Controller().State())

	press(m, esc, enter, down, down, down, enter)
	assert.Equal(t, tray.ModeClosed, mode(m))
}

func TestCapturedItemsUpdateCount(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, ItemCapturedMsg{Item: history.NewTextItem("one", time.Now())})
	press(m, ItemCapturedMsg{Item: history.NewTextItem("one", time.Now())})
	press(m, ItemCapturedMsg{Item: history.NewTextItem("  ", time.Now())})

	assert.Equal(t, 1, m.Controller().State().ItemCount)
	assert.Contains(t, m.View(), "📋 1 item")
}

func TestFullViewSearchFilters(t *testing.T) {
	m, _, _ := newTestModel(t, "hello world", "https://go.dev", "golang")
	press(m, runes("o"))
	require.Len(t, m.filtered, 3)

	press(m, runes("/"), runes("g"), runes("o"), runes("."))
	require.True(t, m.search.Focused())
	assert.Len(t, m.filtered, 1)
	assert.Equal(t, "https://go.dev", m.filtered[0].Text)

	press(m, enter)
	assert.False(t, m.search.Focused())
	assert.Equal(t, tray.ModeFullViewOpen, mode(m))
}

func TestFullViewSearchTokens(t *testing.T) {
	m, _, _ := newTestModel(t, "hello world", "https://go.dev", "golang")
	press(m, runes("o"), runes("/"))

	press(m, runes("GO dev"))
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "https://go.dev", m.filtered[0].Text)

	m.search.SetValue("")
	press(m, runes("type:text"))
	assert.Len(t, m.filtered, 2)
}

func TestFullViewDeleteAndClear(t *testing.T) {
	m, manager, _ := newTestModel(t, "a", "b", "c")
	press(m, runes("o"))

	press(m, runes("d"))
	assert.Equal(t, 2, manager.Count())
	assert.Equal(t, 2, m.Controller().State().ItemCount)

	press(m, runes("C"))
	assert.Contains(t, m.View(), "Clear all history?")
	press(m, runes("n"))
	assert.Equal(t, 2, manager.Count())

	press(m, runes("C"), runes("y"))
	assert.Zero(t, manager.Count())
	assert.Contains(t, m.View(), "No clipboard history yet")
}

func TestFullViewNavigationAndRestore(t *testing.T) {
	m, _, restorer := newTestModel(t, "a", "b", "c")
	press(m, runes("o"), runes("j"), runes("j"), runes("j"), runes("k"))

	assert.Equal(t, 1, m.cursor)
	press(m, enter)
	require.Len(t, restorer.restored, 1)
	assert.Equal(t, "b", restorer.restored[0].Text)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, tray.ModeFullViewOpen, mode(m))

	press(m, runes("x"))
	assert.Equal(t, tray.ModeClosed, mode(m))
}

func TestClickTriggerToggles(t *testing.T) {
	m, _, _ := newTestModel(t, "a")

	click(m, 1, 0)
	assert.Equal(t, tray.ModeDropdownOpen, mode(m))

	click(m, 1, 0)
	assert.Equal(t, tray.ModeClosed, mode(m))
	assert.Zero(t, m.Document().Listeners())
}

func TestClickOutsideDismissesDropdown(t *testing.T) {
	m, _, _ := newTestModel(t, "a")
	press(m, enter)

	click(m, 70, 20)

	assert.Equal(t, tray.ModeClosed, mode(m))
	assert.Zero(t, m.Document().Listeners())
}

func TestClickDropdownRows(t *testing.T) {
	m, _, restorer := newTestModel(t, "a", "b")

	// Trigger, top border, then one row per item.
	press(m, enter)
	click(m, 5, 3)
	require.Len(t, restorer.restored, 1)
	assert.Equal(t, "a", restorer.restored[0].Text)
	assert.Equal(t, tray.ModeClosed, mode(m))

	press(m, enter)
	click(m, 5, 4)
	assert.Equal(t, tray.InteractionState{FullViewOpen: true, ItemCount: 2}, m.Controller().State())
}

func TestClickBesideDropdownOnlyDismisses(t *testing.T) {
	m, _, restorer := newTestModel(t, "a", "b")
	press(m, tea.WindowSizeMsg{Width: 120, Height: 30}, enter)

	click(m, dropdownMaxWidth+5, 3)

	assert.Empty(t, restorer.restored)
	assert.Equal(t, tray.ModeClosed, mode(m))

	press(m, enter)
	click(m, dropdownMaxWidth-1, 3)
	require.Len(t, restorer.restored, 1)
}

func TestClickFullViewCloseAndRows(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b")
	press(m, tea.WindowSizeMsg{Width: 80, Height: 24}, runes("o"))

	click(m, 5, 4)
	assert.Equal(t, 1, m.cursor)

	click(m, 78, 1)
	assert.Equal(t, tray.ModeClosed, mode(m))
}

func TestWheelMovesSelection(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b")
	press(m, runes("o"))

	press(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 1, m.cursor)
	press(m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.cursor)
}

func TestSurfacesNeverBothOpen(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b", "c")
	msgs := []tea.Msg{
		ctrlV, esc, enter, down, runes("o"), runes("x"), runes("j"), runes("/"),
		tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 5, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 78, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
	}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		m.View()
		press(m, msgs[rng.Intn(len(msgs))])
		state := m.Controller().State()
		require.True(t, state.Valid(), "step %d: %+v", i, state)
		require.Equal(t, btoi(state.DropdownOpen), m.Document().Listeners(), "step %d", i)
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
