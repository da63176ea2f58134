package tray

// TriggerProps is what the always-visible trigger may see and do.
type TriggerProps struct {
	Active     bool
	ItemCount  int
	OnActivate func()
}

// DropdownProps is what the compact history overlay may see and do.
type DropdownProps struct {
	Open           bool
	OnClose        func()
	OnOpenFullView func()
}

// FullViewProps is what the full clipboard browser may see and do.
type FullViewProps struct {
	Open    bool
	OnClose func()
}

// TriggerProps returns the trigger's view of the state.
func (c *Controller) TriggerProps() TriggerProps {
	return TriggerProps{
		Active:     c.state.DropdownOpen,
		ItemCount:  c.state.ItemCount,
		OnActivate: c.ToggleDropdown,
	}
}

// DropdownProps returns the dropdown's view of the state.
func (c *Controller) DropdownProps() DropdownProps {
	return DropdownProps{
		Open:           c.state.DropdownOpen,
		OnClose:        c.CloseDropdown,
		OnOpenFullView: c.OpenFullView,
	}
}

// FullViewProps returns the full view's view of the state.
func (c *Controller) FullViewProps() FullViewProps {
	return FullViewProps{
		Open:    c.state.FullViewOpen,
		OnClose: c.CloseFullView,
	}
}
