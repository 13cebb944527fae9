package tui

// PaneDimensions holds calculated dimensions for all panes in the TUI layout
type PaneDimensions struct {
	// Left column (Settings)
	SettingsWidth  int
	SettingsHeight int

	// Center column (Picker)
	PickerWidth  int
	PickerHeight int

	// Right column (total)
	RightWidth  int
	RightHeight int

	// Right column (stacked components)
	HistoryHeight int // ~50% of right height
	EventsHeight  int // remaining height

	// Bottom bar
	StatusHeight int // Fixed: 1 line
}

// CalculatePaneDimensions computes pane sizes based on terminal dimensions.
// It implements a 30-35-35 horizontal split for Settings, Picker and the right
// column, with the right column divided evenly into History and Events.
func CalculatePaneDimensions(termWidth, termHeight int) PaneDimensions {
	dims := PaneDimensions{
		StatusHeight: 1,
	}

	// Calculate available height (terminal height minus the status bar)
	availableHeight := termHeight - dims.StatusHeight
	if availableHeight < 0 {
		availableHeight = 0
	}
	if termWidth < 0 {
		termWidth = 0
	}

	// All columns share the same available height
	dims.SettingsHeight = availableHeight
	dims.PickerHeight = availableHeight
	dims.RightHeight = availableHeight

	// Integer percentages; the remainder goes to the right column so the
	// widths always sum to termWidth
	dims.SettingsWidth = termWidth * 30 / 100
	dims.PickerWidth = termWidth * 35 / 100
	dims.RightWidth = termWidth - dims.SettingsWidth - dims.PickerWidth

	dims.HistoryHeight = dims.RightHeight * 50 / 100
	dims.EventsHeight = dims.RightHeight - dims.HistoryHeight

	return dims
}
