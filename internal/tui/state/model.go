// Package state hosts the tray surfaces in a bubbletea program.
package state

import (
	goerrors "errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/cliptray/internal/errors"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/cristianoliveira/cliptray/internal/logging"
	"github.com/cristianoliveira/cliptray/internal/search"
	"github.com/cristianoliveira/cliptray/internal/tray"
	"github.com/cristianoliveira/cliptray/internal/tui/render"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	defaultDropdownItems  = 8
	defaultToastDuration  = 3 * time.Second
	// trigger, title, search, two separators, footer and toast lines
	fullViewChromeLines = 7
	minPaneHeight       = 3
)

// Restorer writes a history item back to the clipboard.
type Restorer interface {
	Restore(item history.Item) error
}

// Options configures a Model.
type Options struct {
	History       *history.Manager
	Restorer      Restorer
	Chord         tray.Chord
	DropdownItems int
	PreviewLength int
	ToastDuration time.Duration
	Logger        logging.Logger
	// Now is the clock used for relative times. Defaults to time.Now.
	Now func() time.Time
}

// Model represents the tray UI for bubbletea.
type Model struct {
	ctrl         *tray.Controller
	doc          *tray.Document
	history      *history.Manager
	restorer     Restorer
	searcher     search.Provider
	errorHandler *errors.TUIHandler
	keys         KeyMap
	logger       logging.Logger
	now          func() time.Time

	toastDuration time.Duration
	dropdownItems int
	previewLength int

	width  int
	height int

	// Dropdown state.
	dropdownCursor int

	// Full view state.
	filtered     []history.Item
	cursor       int
	listOffset   int
	search       textinput.Model
	detail       viewport.Model
	confirmClear bool

	// Clickable regions from the last View.
	hits []hitRegion
}

// NewModel creates the tray model. History is required.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Chord == (tray.Chord{}) {
		opts.Chord = tray.DefaultChord
	}
	if opts.DropdownItems <= 0 {
		opts.DropdownItems = defaultDropdownItems
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = history.DefaultPreviewLength
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search clipboard history..."

	doc := tray.NewDocument()
	ctrlOpts := []tray.Option{tray.WithClickSource(doc), tray.WithChord(opts.Chord)}
	if opts.Logger != nil {
		ctrlOpts = append(ctrlOpts, tray.WithLogger(opts.Logger))
	} else {
		opts.Logger = logging.With("component", "tui")
	}

	m := &Model{
		doc:           doc,
		history:       opts.History,
		restorer:      opts.Restorer,
		searcher:      search.NewTokenProvider(search.WithCaseInsensitive(true)),
		errorHandler:  errors.NewTUIHandler(nil),
		keys:          DefaultKeyMap,
		logger:        opts.Logger,
		now:           opts.Now,
		toastDuration: opts.ToastDuration,
		dropdownItems: opts.DropdownItems,
		previewLength: opts.PreviewLength,
		search:        input,
		detail:        viewport.New(defaultViewportWidth, minPaneHeight),
	}
	m.ctrl = tray.NewController(opts.History.Count(), ctrlOpts...)
	m.ctrl.OnChange(m.onStateChange)
	opts.History.OnChange(m.ctrl.SetItemCount)
	m.resizeDetail()
	return m
}

// Controller exposes the interaction controller, e.g. for tests.
func (m *Model) Controller() *tray.Controller {
	return m.ctrl
}

// Document exposes the click source the controller subscribes to.
func (m *Model) Document() *tray.Document {
	return m.doc
}

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeDetail()
		return m, nil
	case ItemCapturedMsg:
		return m, m.addCaptured(msg.Item)
	case toastExpiredMsg:
		// Re-render drops the expired toast.
		return m, nil
	}
	return m, nil
}

// Close releases the controller's subscriptions.
func (m *Model) Close() {
	m.ctrl.Close()
}

// onStateChange resets per-surface state when a surface opens or closes.
func (m *Model) onStateChange(prev, next tray.InteractionState) {
	if next.DropdownOpen && !prev.DropdownOpen {
		m.dropdownCursor = 0
	}
	if next.FullViewOpen && !prev.FullViewOpen {
		m.cursor = 0
		m.listOffset = 0
		m.search.SetValue("")
		m.refilter()
	}
	if !next.FullViewOpen && prev.FullViewOpen {
		m.confirmClear = false
		m.search.Blur()
	}
}

func (m *Model) addCaptured(item history.Item) tea.Cmd {
	err := m.history.Add(item)
	switch {
	case err == nil:
	case goerrors.Is(err, history.ErrDuplicate), goerrors.Is(err, history.ErrEmptyContent):
		return nil
	default:
		m.logger.Error("history add failed", "error", err.Error())
		return m.toast(errors.MessageTypeError, "Could not save clipboard item: "+err.Error())
	}
	if m.ctrl.State().FullViewOpen {
		m.refilter()
	}
	return nil
}

// restore copies item back to the clipboard and moves it to the front.
func (m *Model) restore(item history.Item) tea.Cmd {
	if m.restorer == nil {
		return m.toast(errors.MessageTypeWarning, "Clipboard is not available")
	}
	if err := m.restorer.Restore(item); err != nil {
		m.logger.Error("restore failed", "error", err.Error())
		return m.toast(errors.MessageTypeError, "Copy failed: "+err.Error())
	}
	item.Timestamp = m.now()
	if err := m.history.Add(item); err != nil && !goerrors.Is(err, history.ErrDuplicate) {
		m.logger.Warn("history reorder failed", "error", err.Error())
	}
	if m.ctrl.State().FullViewOpen {
		m.refilter()
		m.cursor = 0
		m.listOffset = 0
		m.syncDetail()
	}
	return m.toast(errors.MessageTypeSuccess, "Copied to clipboard")
}

func (m *Model) deleteSelected() tea.Cmd {
	item, ok := m.selected()
	if !ok {
		return nil
	}
	if err := m.history.Remove(item.ID); err != nil {
		return m.toast(errors.MessageTypeError, "Delete failed: "+err.Error())
	}
	m.refilter()
	return m.toast(errors.MessageTypeInfo, "Item deleted")
}

func (m *Model) clearHistory() tea.Cmd {
	m.confirmClear = false
	if err := m.history.Clear(); err != nil {
		return m.toast(errors.MessageTypeError, "Clear failed: "+err.Error())
	}
	m.refilter()
	return m.toast(errors.MessageTypeInfo, "Clipboard history cleared")
}

// toast records a message and schedules the re-render that hides it.
func (m *Model) toast(kind errors.MessageType, text string) tea.Cmd {
	switch kind {
	case errors.MessageTypeError:
		m.errorHandler.Error(text)
	case errors.MessageTypeWarning:
		m.errorHandler.Warning(text)
	case errors.MessageTypeSuccess:
		m.errorHandler.Success(text)
	default:
		m.errorHandler.Info(text)
	}
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{} })
}

// refilter recomputes the full-view list from the search query and keeps
// the cursor in range. Every word of the query must match; "type:url"
// narrows by item type.
func (m *Model) refilter() {
	m.filtered = search.Filter(m.history.Items(), m.searcher, m.search.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.ensureCursorVisible()
	m.syncDetail()
}

func (m *Model) selected() (history.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return history.Item{}, false
	}
	return m.filtered[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor = min(max(0, m.cursor+delta), len(m.filtered)-1)
	m.ensureCursorVisible()
	m.syncDetail()
}

func (m *Model) ensureCursorVisible() {
	height := m.listHeight()
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+height {
		m.listOffset = m.cursor - height + 1
	}
	m.listOffset = max(0, m.listOffset)
}

func (m *Model) syncDetail() {
	item, ok := m.selected()
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(render.Detail(item, m.now()))
	m.detail.GotoTop()
}

func (m *Model) viewWidth() int {
	if m.width <= 0 {
		return defaultViewportWidth
	}
	return m.width
}

func (m *Model) viewHeight() int {
	if m.height <= 0 {
		return defaultViewportHeight
	}
	return m.height
}

func (m *Model) listHeight() int {
	avail := m.viewHeight() - fullViewChromeLines
	return max(minPaneHeight, avail/2)
}

func (m *Model) resizeDetail() {
	avail := m.viewHeight() - fullViewChromeLines
	m.detail.Width = m.viewWidth()
	m.detail.Height = max(minPaneHeight, avail-m.listHeight())
	m.ensureCursorVisible()
}
