package picker

import "github.com/MikeBiancalana/qeydar/internal/calendar"

// Event is an input to the picker state machine.
type Event interface {
	eventName() string
}

// TextCommitted is an explicit commit of the text in slot (Enter).
type TextCommitted struct {
	Slot Slot
	Text string
}

// TextEdited carries live keystroke text. It commits when the text parses and
// never rewrites the input.
type TextEdited struct {
	Slot Slot
	Text string
}

// PopupPicked is a single day chosen in the popup calendar.
type PopupPicked struct {
	Date calendar.Date
}

// PopupRangePicked commits both endpoints at once.
type PopupRangePicked struct {
	Start calendar.Date
	End   calendar.Date
}

// ExternalWrite is a value set by the host. It never notifies.
type ExternalWrite struct {
	Value Value
}

// FocusGained opens the popup for slot.
type FocusGained struct {
	Slot Slot
}

// FocusLost corrects whatever text slot holds.
type FocusLost struct {
	Slot Slot
}

// Dismissed closes the popup without touching the selection.
type Dismissed struct{}

func (TextCommitted) eventName() string    { return "text_committed" }
func (TextEdited) eventName() string       { return "text_edited" }
func (PopupPicked) eventName() string      { return "popup_picked" }
func (PopupRangePicked) eventName() string { return "popup_range_picked" }
func (ExternalWrite) eventName() string    { return "external_write" }
func (FocusGained) eventName() string      { return "focus_gained" }
func (FocusLost) eventName() string        { return "focus_lost" }
func (Dismissed) eventName() string        { return "dismissed" }
