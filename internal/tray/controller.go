package tray

import (
	"github.com/cristianoliveira/cliptray/internal/logging"
)

// Observer is notified once per committed state change.
type Observer func(prev, next InteractionState)

// Option configures a Controller.
type Option func(*Controller)

// WithClickSource sets where document-level click subscriptions come from.
func WithClickSource(source ClickSource) Option {
	return func(c *Controller) {
		c.source = source
	}
}

// WithChord overrides the dropdown shortcut.
func WithChord(chord Chord) Option {
	return func(c *Controller) {
		if chord.Key != "" {
			c.chord = chord
		}
	}
}

// WithLogger sets the logger used for transition traces.
func WithLogger(logger logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the InteractionState and applies every transition.
// It must be driven from a single goroutine.
type Controller struct {
	state     InteractionState
	source    ClickSource
	chord     Chord
	bridge    *Bridge
	release   func()
	observers []Observer
	logger    logging.Logger
}

// NewController creates a controller in the closed state.
func NewController(itemCount int, opts ...Option) *Controller {
	c := &Controller{
		state:  InteractionState{ItemCount: clampCount(itemCount)},
		chord:  DefaultChord,
		logger: logging.With("component", "tray"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bridge = newBridge(c.Apply, c.chord)
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() InteractionState {
	return c.state
}

// Bridge returns the input bridge bound to this controller.
func (c *Controller) Bridge() *Bridge {
	return c.bridge
}

// Subscribed reports whether the document click subscription is held.
func (c *Controller) Subscribed() bool {
	return c.release != nil
}

// OnChange registers an observer and returns a function that removes it.
func (c *Controller) OnChange(observer Observer) func() {
	if observer == nil {
		return func() {}
	}
	c.observers = append(c.observers, observer)
	idx := len(c.observers) - 1
	return func() {
		if idx < len(c.observers) {
			c.observers[idx] = nil
		}
	}
}

// Apply dispatches a logical event.
func (c *Controller) Apply(event Event) {
	switch event {
	case EventToggleDropdown:
		c.ToggleDropdown()
	case EventDismissDropdown:
		c.DismissOnOutsideInteraction()
	case EventOpenFullView:
		c.OpenFullView()
	case EventCloseFullView:
		c.CloseFullView()
	}
}

// ToggleDropdown flips the dropdown. Opening it hides the full view.
func (c *Controller) ToggleDropdown() {
	if c.state.DropdownOpen {
		c.setDropdown("toggle", false)
		return
	}
	c.setDropdown("toggle", true)
}

// OpenDropdown shows the dropdown.
func (c *Controller) OpenDropdown() {
	c.setDropdown("open-dropdown", true)
}

// CloseDropdown hides the dropdown.
func (c *Controller) CloseDropdown() {
	c.setDropdown("close-dropdown", false)
}

// DismissOnOutsideInteraction hides the dropdown after a document click.
func (c *Controller) DismissOnOutsideInteraction() {
	c.setDropdown("dismiss", false)
}

// OpenFullView shows the full view and hides the dropdown in one update.
func (c *Controller) OpenFullView() {
	next := c.state
	next.FullViewOpen = true
	next.DropdownOpen = false
	c.commit("open-full-view", next)
}

// CloseFullView hides the full view.
func (c *Controller) CloseFullView() {
	next := c.state
	next.FullViewOpen = false
	c.commit("close-full-view", next)
}

// HandleEscape closes both views.
func (c *Controller) HandleEscape() {
	next := c.state
	next.DropdownOpen = false
	next.FullViewOpen = false
	c.commit("escape", next)
}

// HandleShortcut is the shortcut chord action.
func (c *Controller) HandleShortcut() {
	c.ToggleDropdown()
}

// SetItemCount replaces the count shown on the trigger.
func (c *Controller) SetItemCount(count int) {
	next := c.state
	next.ItemCount = clampCount(count)
	c.commit("item-count", next)
}

// Close releases the click subscription. The controller stays usable.
func (c *Controller) Close() {
	c.teardown()
}

func (c *Controller) setDropdown(op string, open bool) {
	next := c.state
	next.DropdownOpen = open
	if open {
		next.FullViewOpen = false
	}
	c.commit(op, next)
}

// commit is the only writer of c.state.
func (c *Controller) commit(op string, next InteractionState) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	c.syncSubscription()

	if prev.Mode() != next.Mode() {
		c.logger.Debug("tray transition", "op", op, "from", prev.Mode().String(), "to", next.Mode().String())
	}
	for _, observer := range c.observers {
		if observer != nil {
			observer(prev, next)
		}
	}
}

func (c *Controller) syncSubscription() {
	switch {
	case c.state.DropdownOpen && c.release == nil:
		if c.source != nil {
			c.release = c.source.Subscribe(c.bridge.OnDocumentClick)
		}
	case !c.state.DropdownOpen:
		c.teardown()
	}
}

func (c *Controller) teardown() {
	if c.release == nil {
		return
	}
	release := c.release
	c.release = nil
	release()
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
