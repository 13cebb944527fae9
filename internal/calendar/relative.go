package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRelative resolves user shorthand into a Date in adapter a's calendar.
// Supports:
// - "t" or "today" - today
// - "tm" or "tomorrow" - tomorrow
// - "y" or "yesterday" - yesterday
// - "+3d", "-3d" - days from today
// - "+2w", "-2w" - weeks from today
// - "+1m", "-1m" - months from today
// - "+1y", "-1y" - years from today
// - anything else is parsed with layout
func ParseRelative(input string, a Adapter, layout string) (Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Date{}, fmt.Errorf("empty input")
	}

	today := a.Today()
	switch strings.ToLower(input) {
	case "t", "today":
		return today, nil
	case "tm", "tomorrow":
		return today.AddDays(1), nil
	case "y", "yesterday":
		return today.AddDays(-1), nil
	}

	if input[0] == '+' || input[0] == '-' {
		return parseOffset(input, a, today)
	}

	d, ok := a.Parse(input, layout)
	if !ok {
		return Date{}, fmt.Errorf("invalid %s date %q for layout %q", a.System(), input, layout)
	}
	return d, nil
}

func parseOffset(input string, a Adapter, today Date) (Date, error) {
	unit := strings.ToLower(input[len(input)-1:])
	n, err := strconv.Atoi(input[:len(input)-1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid offset %q: %w", input, err)
	}
	switch unit {
	case "d":
		return today.AddDays(n), nil
	case "w":
		return today.AddDays(7 * n), nil
	case "m":
		return a.AddMonths(today, n), nil
	case "y":
		return a.AddYears(today, n), nil
	default:
		return Date{}, fmt.Errorf("invalid offset unit %q (use d, w, m or y)", unit)
	}
}
