package picker

import "github.com/MikeBiancalana/qeydar/internal/calendar"

// State is the committed selection. Single is used outside range mode; Start
// and End only in range mode. When both Start and End are set, Start is not
// after End.
type State struct {
	Single calendar.Date
	Start  calendar.Date
	End    calendar.Date
	Active Slot
}

// Value is what the host sees: a formatted date, or a formatted start/end
// pair in range mode. Values compare with ==.
type Value struct {
	Date  string `json:"date,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// SingleValue wraps a formatted date.
func SingleValue(date string) Value {
	return Value{Date: date}
}

// RangeValue wraps a formatted start/end pair.
func RangeValue(start, end string) Value {
	return Value{Start: start, End: end}
}

func (v Value) IsZero() bool {
	return v == Value{}
}

func (v Value) IsRange() bool {
	return v.Start != "" || v.End != ""
}

func (v Value) String() string {
	if v.IsRange() {
		return v.Start + " → " + v.End
	}
	return v.Date
}

// FocusEvent is sent when a slot gains focus.
type FocusEvent struct {
	Slot Slot
}

// BlurEvent is sent when a slot loses focus, with the corrected date the
// slot's text committed to. In range mode that date may have moved to the
// start slot.
type BlurEvent struct {
	Slot  Slot
	Value string
}
