// Package calendar converts between days and their textual form in a given
// calendar system.
//
// A Date is calendar agnostic. An Adapter knows how one calendar system
// (Gregorian, Jalali) numbers those days: it parses and formats text, splits a
// day into year/month/day and answers "today". Adapters hold no mutable state
// and are safe to share between goroutines.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// System identifies a calendar system.
type System string

const (
	SystemGregorian System = "gregorian"
	SystemJalali    System = "jalali"
)

// ErrUnknownSystem is returned when a calendar name has no adapter.
var ErrUnknownSystem = errors.New("unknown calendar system")

// ParseSystem maps a user supplied name to a System. "georgian" is accepted
// as an alias of gregorian since older settings files used it.
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gregorian", "georgian", "g":
		return SystemGregorian, nil
	case "jalali", "persian", "shamsi", "j":
		return SystemJalali, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
}

func (s System) String() string {
	return string(s)
}

// Adapter is the contract every calendar system implements.
type Adapter interface {
	System() System

	// Parse decodes text laid out as layout. It returns false for text that
	// does not match the layout or names a day the calendar does not have.
	Parse(text, layout string) (Date, bool)
	// Format renders d with layout. Format and Parse round-trip for layouts
	// that carry year, month and day.
	Format(d Date, layout string) string
	// IsValidFormat reports whether text structurally matches layout, without
	// checking that the numbers form a real day.
	IsValidFormat(text, layout string) bool

	Today() Date
	Compare(a, b Date) int
	IsBefore(a, b Date) bool
	IsAfter(a, b Date) bool
	// Max returns the latest non-zero date, or the zero Date if there is none.
	Max(dates ...Date) Date

	Split(d Date) (year, month, day int)
	Make(year, month, day int) (Date, bool)
	DaysInMonth(year, month int) int
	AddMonths(d Date, n int) Date
	AddYears(d Date, n int) Date
	FirstWeekday() time.Weekday
	MonthName(month int) string
}

// Option configures an adapter.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used by Today.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// civil is the arithmetic a calendar system must provide. The exported
// adapters build the full Adapter contract on top of it.
type civil interface {
	toJDN(y, m, d int) int
	fromJDN(jdn int) (y, m, d int)
	daysInMonth(y, m int) int
	yearRange() (min, max int)
}

func makeDate(c civil, y, m, d int) (Date, bool) {
	lo, hi := c.yearRange()
	if y < lo || y > hi || m < 1 || m > 12 {
		return Date{}, false
	}
	if d < 1 || d > c.daysInMonth(y, m) {
		return Date{}, false
	}
	return Date{jdn: c.toJDN(y, m, d)}, true
}

func parseDate(c civil, text, layout string) (Date, bool) {
	f, ok := scan(text, tokenize(layout))
	if !ok {
		return Date{}, false
	}
	return makeDate(c, f.year, f.month, f.day)
}

func formatDate(c civil, d Date, layout string) string {
	if d.IsZero() {
		return ""
	}
	y, m, dd := c.fromJDN(d.jdn)
	return render(fields{year: y, month: m, day: dd}, tokenize(layout))
}

func addMonths(c civil, d Date, n int) Date {
	if d.IsZero() {
		return d
	}
	y, m, dd := c.fromJDN(d.jdn)
	total := y*12 + (m - 1) + n
	ny, nm := floorDiv(total, 12), total-floorDiv(total, 12)*12+1
	if lo, hi := c.yearRange(); ny < lo || ny > hi {
		return d
	}
	if days := c.daysInMonth(ny, nm); dd > days {
		dd = days
	}
	if out, ok := makeDate(c, ny, nm, dd); ok {
		return out
	}
	return d
}

func maxDate(dates []Date) Date {
	var out Date
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if out.IsZero() || d.After(out) {
			out = d
		}
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Registry maps each System to its adapter.
type Registry map[System]Adapter

// DefaultRegistry holds the Gregorian and Jalali adapters.
func DefaultRegistry(opts ...Option) Registry {
	return Registry{
		SystemGregorian: NewGregorian(opts...),
		SystemJalali:    NewJalali(opts...),
	}
}

// Lookup returns the adapter for system.
func (r Registry) Lookup(system System) (Adapter, error) {
	a, ok := r[system]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, system)
	}
	return a, nil
}
