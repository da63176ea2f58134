package tray

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, count int) (*Controller, *Document) {
	t.Helper()
	doc := NewDocument()
	c := NewController(count, WithClickSource(doc))
	t.Cleanup(c.Close)
	return c, doc
}

func TestNewControllerStartsClosed(t *testing.T) {
	c, doc := newTestController(t, 7)

	state := c.State()
	assert.False(t, state.DropdownOpen)
	assert.False(t, state.FullViewOpen)
	assert.Equal(t, 7, state.ItemCount)
	assert.Equal(t, ModeClosed, state.Mode())
	assert.Equal(t, 0, doc.Listeners())
}

func TestNewControllerClampsNegativeCount(t *testing.T) {
	c := NewController(-3)
	assert.Equal(t, 0, c.State().ItemCount)
}

func TestOperations(t *testing.T) {
	closed := InteractionState{}
	dropdown := InteractionState{DropdownOpen: true}
	full := InteractionState{FullViewOpen: true}

	tests := []struct {
		name  string
		start InteractionState
		op    func(*Controller)
		want  InteractionState
	}{
		{"toggle from closed", closed, (*Controller).ToggleDropdown, dropdown},
		{"toggle from dropdown", dropdown, (*Controller).ToggleDropdown, closed},
		{"toggle from full view", full, (*Controller).ToggleDropdown, dropdown},
		{"open dropdown", closed, (*Controller).OpenDropdown, dropdown},
		{"open dropdown when open", dropdown, (*Controller).OpenDropdown, dropdown},
		{"close dropdown", dropdown, (*Controller).CloseDropdown, closed},
		{"close dropdown when closed", closed, (*Controller).CloseDropdown, closed},
		{"dismiss", dropdown, (*Controller).DismissOnOutsideInteraction, closed},
		{"open full view from dropdown", dropdown, (*Controller).OpenFullView, full},
		{"open full view from closed", closed, (*Controller).OpenFullView, full},
		{"close full view", full, (*Controller).CloseFullView, closed},
		{"close full view when closed", closed, (*Controller).CloseFullView, closed},
		{"escape from dropdown", dropdown, (*Controller).HandleEscape, closed},
		{"escape from full view", full, (*Controller).HandleEscape, closed},
		{"escape from closed", closed, (*Controller).HandleEscape, closed},
		{"shortcut from closed", closed, (*Controller).HandleShortcut, dropdown},
		{"shortcut from dropdown", dropdown, (*Controller).HandleShortcut, closed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t, 0)
			switch tt.start.Mode() {
			case ModeDropdownOpen:
				c.OpenDropdown()
			case ModeFullViewOpen:
				c.OpenFullView()
			}
			require.Equal(t, tt.start, c.State())

			tt.op(c)

			assert.Equal(t, tt.want, c.State())
			assert.Equal(t, tt.want.DropdownOpen, c.Subscribed())
		})
	}
}

func TestViewsNeverOpenTogether(t *testing.T) {
	c, doc := newTestController(t, 3)
	ops := []func(){
		c.ToggleDropdown,
		c.OpenDropdown,
		c.CloseDropdown,
		c.DismissOnOutsideInteraction,
		c.OpenFullView,
		c.CloseFullView,
		c.HandleEscape,
		c.HandleShortcut,
		func() { doc.Dispatch(ClickEvent{}, nil) },
		func() { c.Bridge().OnKeyDown(&KeyEvent{Key: "v", Primary: true, Shift: true}) },
		func() { c.Bridge().OnKeyDown(&KeyEvent{Key: KeyEscape}) },
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		ops[rng.Intn(len(ops))]()
		state := c.State()
		require.True(t, state.Valid(), "step %d: %+v", i, state)
		require.Equal(t, state.DropdownOpen, c.Subscribed(), "step %d", i)
		require.Equal(t, btoi(state.DropdownOpen), doc.Listeners(), "step %d", i)
		require.Equal(t, 3, state.ItemCount)
	}
}

func TestToggleTwiceReturnsToClosed(t *testing.T) {
	c, _ := newTestController(t, 0)

	c.ToggleDropdown()
	c.ToggleDropdown()

	assert.Equal(t, InteractionState{}, c.State())
}

func TestOpenFullViewIsOneUpdate(t *testing.T) {
	c, _ := newTestController(t, 0)
	c.OpenDropdown()

	var seen []InteractionState
	c.OnChange(func(_, next InteractionState) {
		seen = append(seen, next)
	})

	c.OpenFullView()

	require.Len(t, seen, 1)
	assert.Equal(t, InteractionState{FullViewOpen: true}, seen[0])
}

func TestEscapeFromAnyState(t *testing.T) {
	setups := map[string]func(*Controller){
		"closed":    func(*Controller) {},
		"dropdown":  (*Controller).OpenDropdown,
		"full view": (*Controller).OpenFullView,
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestController(t, 5)
			setup(c)

			c.HandleEscape()

			assert.Equal(t, InteractionState{ItemCount: 5}, c.State())
		})
	}
}

func TestTriggerThenOutsideClick(t *testing.T) {
	c, doc := newTestController(t, 0)

	c.TriggerProps().OnActivate()
	require.Equal(t, ModeDropdownOpen, c.State().Mode())

	doc.Dispatch(ClickEvent{X: 40, Y: 10}, nil)
	assert.Equal(t, ModeClosed, c.State().Mode())
}

func TestShortcutTwice(t *testing.T) {
	c, _ := newTestController(t, 0)
	chord := &KeyEvent{Key: "v", Primary: true, Shift: true}

	c.Bridge().OnKeyDown(chord)
	require.Equal(t, ModeDropdownOpen, c.State().Mode())

	c.Bridge().OnKeyDown(&KeyEvent{Key: "V", Primary: true, Shift: true})
	assert.Equal(t, ModeClosed, c.State().Mode())
}

func TestOpenFullAppThenEscape(t *testing.T) {
	c, _ := newTestController(t, 0)
	c.OpenDropdown()

	c.DropdownProps().OnOpenFullView()
	state := c.State()
	require.False(t, state.DropdownOpen)
	require.True(t, state.FullViewOpen)
	assert.False(t, c.Subscribed())

	c.Bridge().OnKeyDown(&KeyEvent{Key: KeyEscape})
	assert.Equal(t, ModeClosed, c.State().Mode())
}

func TestSubscriptionFollowsDropdown(t *testing.T) {
	c, doc := newTestController(t, 0)
	const n = 25

	for i := 0; i < n; i++ {
		c.ToggleDropdown()
		require.Equal(t, 1, doc.Listeners())
		c.OpenDropdown()
		require.Equal(t, 1, doc.Listeners(), "reopening must not subscribe twice")
		c.ToggleDropdown()
		require.Equal(t, 0, doc.Listeners())
	}

	attached, detached := doc.Stats()
	assert.Equal(t, n, attached)
	assert.Equal(t, n, detached)
}

func TestEveryExitReleasesSubscription(t *testing.T) {
	exits := map[string]func(*Controller, *Document){
		"outside click":  func(_ *Controller, d *Document) { d.Dispatch(ClickEvent{}, nil) },
		"escape":         func(c *Controller, _ *Document) { c.HandleEscape() },
		"open full view": func(c *Controller, _ *Document) { c.OpenFullView() },
		"close":          func(c *Controller, _ *Document) { c.CloseDropdown() },
		"controller":     func(c *Controller, _ *Document) { c.Close() },
	}
	for name, exit := range exits {
		t.Run(name, func(t *testing.T) {
			c, doc := newTestController(t, 0)
			c.OpenDropdown()
			require.Equal(t, 1, doc.Listeners())

			exit(c, doc)

			assert.Equal(t, 0, doc.Listeners())
			_, detached := doc.Stats()
			assert.Equal(t, 1, detached)
		})
	}
}

func TestItemCountIsForwarded(t *testing.T) {
	c, _ := newTestController(t, 2)
	c.OpenDropdown()

	c.SetItemCount(9)

	props := c.TriggerProps()
	assert.Equal(t, 9, props.ItemCount)
	assert.True(t, props.Active)
	assert.Equal(t, ModeDropdownOpen, c.State().Mode())
}

func TestObserverCanBeRemoved(t *testing.T) {
	c, _ := newTestController(t, 0)
	calls := 0
	remove := c.OnChange(func(_, _ InteractionState) { calls++ })

	c.ToggleDropdown()
	remove()
	c.ToggleDropdown()

	assert.Equal(t, 1, calls)
}

func TestNoOpDoesNotNotify(t *testing.T) {
	c, _ := newTestController(t, 0)
	calls := 0
	c.OnChange(func(_, _ InteractionState) { calls++ })

	c.CloseDropdown()
	c.CloseFullView()
	c.HandleEscape()

	assert.Zero(t, calls)
}

func TestControllerWithoutClickSource(t *testing.T) {
	c := NewController(0)

	c.OpenDropdown()

	assert.True(t, c.State().DropdownOpen)
	assert.False(t, c.Subscribed())
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
