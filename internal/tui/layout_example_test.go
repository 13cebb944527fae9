package tui_test

import (
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/tui"
)

// ExampleCalculatePaneDimensions demonstrates basic usage of the layout manager
func ExampleCalculatePaneDimensions() {
	// Calculate dimensions for a standard 120x30 terminal
	dims := tui.CalculatePaneDimensions(120, 30)

	fmt.Printf("Terminal: 120x30\n")
	fmt.Printf("Left pane (Settings): %dx%d\n", dims.SettingsWidth, dims.SettingsHeight)
	fmt.Printf("Center pane (Picker): %dx%d\n", dims.PickerWidth, dims.PickerHeight)
	fmt.Printf("Right pane (total): %dx%d\n", dims.RightWidth, dims.RightHeight)
	fmt.Printf("  History: height %d\n", dims.HistoryHeight)
	fmt.Printf("  Events: height %d\n", dims.EventsHeight)
	fmt.Printf("Status bar: height %d\n", dims.StatusHeight)

	// Output:
	// Terminal: 120x30
	// Left pane (Settings): 36x29
	// Center pane (Picker): 42x29
	// Right pane (total): 42x29
	//   History: height 14
	//   Events: height 15
	// Status bar: height 1
}

// ExampleCalculatePaneDimensions_minimumTerminal demonstrates layout with minimum terminal size
func ExampleCalculatePaneDimensions_minimumTerminal() {
	// Calculate dimensions for minimum 80x24 terminal
	dims := tui.CalculatePaneDimensions(80, 24)

	fmt.Printf("Terminal: 80x24 (minimum size)\n")
	fmt.Printf("Left pane (Settings): %dx%d\n", dims.SettingsWidth, dims.SettingsHeight)
	fmt.Printf("Center pane (Picker): %dx%d\n", dims.PickerWidth, dims.PickerHeight)
	fmt.Printf("Right pane (total): %dx%d\n", dims.RightWidth, dims.RightHeight)

	// Output:
	// Terminal: 80x24 (minimum size)
	// Left pane (Settings): 24x23
	// Center pane (Picker): 28x23
	// Right pane (total): 28x23
}

// ExampleCalculatePaneDimensions_oddWidth shows the right column absorbing rounding
func ExampleCalculatePaneDimensions_oddWidth() {
	dims := tui.CalculatePaneDimensions(101, 40)

	fmt.Printf("Widths: %d + %d + %d = %d\n",
		dims.SettingsWidth, dims.PickerWidth, dims.RightWidth,
		dims.SettingsWidth+dims.PickerWidth+dims.RightWidth)

	// Output:
	// Widths: 30 + 35 + 36 = 101
}
