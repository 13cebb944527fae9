package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
)

// Mode decides how many dates a picker holds and at which granularity.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
	ModeRange Mode = "range"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeDay, ModeMonth, ModeYear, ModeRange}

var (
	ErrUnknownMode   = errors.New("unknown picker mode")
	ErrInvalidConfig = errors.New("invalid picker config")
)

// ParseMode maps a user supplied name to a Mode.
func ParseMode(name string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

func (m Mode) IsRange() bool {
	return m == ModeRange
}

// Layout returns the layout text is read and written with in mode m.
func (m Mode) Layout(format string) string {
	switch m {
	case ModeYear:
		return calendar.LayoutYear
	case ModeMonth:
		return calendar.MonthLayout(format)
	default:
		return format
	}
}

// Slot names an editable endpoint. Single-date modes only use SlotNone.
type Slot int

const (
	SlotNone Slot = iota
	SlotStart
	SlotEnd
)

func (s Slot) String() string {
	switch s {
	case SlotStart:
		return "start"
	case SlotEnd:
		return "end"
	default:
		return ""
	}
}

// Origin tags a transition. Only interactive transitions notify listeners.
type Origin int

const (
	Interactive Origin = iota
	Programmatic
)

func (o Origin) String() string {
	if o == Programmatic {
		return "programmatic"
	}
	return "interactive"
}

// Config is read at every transition, never cached past one.
type Config struct {
	Mode     Mode
	Format   string
	Calendar calendar.System
	// MinDate and MaxDate bound every committed date. Zero means unbounded.
	MinDate calendar.Date
	MaxDate calendar.Date
}

// DefaultConfig is a Gregorian day picker with the yyyy/MM/dd layout.
func DefaultConfig() Config {
	return Config{
		Mode:     ModeDay,
		Format:   calendar.LayoutDay,
		Calendar: calendar.SystemGregorian,
	}
}

// Validate checks the config can drive a picker.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if !calendar.HasYear(c.Format) {
		return fmt.Errorf("%w: format %q has no yyyy token", ErrInvalidConfig, c.Format)
	}
	for _, layout := range []string{c.Format, c.Layout()} {
		if err := calendar.CheckLayout(layout); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if !c.MinDate.IsZero() && !c.MaxDate.IsZero() && c.MinDate.After(c.MaxDate) {
		return fmt.Errorf("%w: min date %s is after max date %s", ErrInvalidConfig, c.MinDate, c.MaxDate)
	}
	return nil
}

// Layout is the layout for the configured mode.
func (c Config) Layout() string {
	return c.Mode.Layout(c.Format)
}
