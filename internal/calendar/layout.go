package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Layouts use the tokens yyyy, MM, M, dd and d. Every other rune is a literal.
const (
	LayoutDay   = "yyyy/MM/dd"
	LayoutMonth = "yyyy/MM"
	LayoutYear  = "yyyy"
)

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokYear
	tokMonth
	tokMonthPadded
	tokDay
	tokDayPadded
)

type token struct {
	kind tokenKind
	lit  string
}

func tokenize(layout string) []token {
	var toks []token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			toks = append(toks, token{kind: tokLiteral, lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(layout); {
		c := layout[i]
		if c != 'y' && c != 'M' && c != 'd' {
			r, size := utf8.DecodeRuneInString(layout[i:])
			lit.WriteRune(r)
			i += size
			continue
		}

		run := 1
		for i+run < len(layout) && layout[i+run] == c {
			run++
		}
		flush()
		switch {
		case c == 'y':
			toks = append(toks, token{kind: tokYear})
		case c == 'M' && run == 1:
			toks = append(toks, token{kind: tokMonth})
		case c == 'M':
			toks = append(toks, token{kind: tokMonthPadded})
		case run == 1:
			toks = append(toks, token{kind: tokDay})
		default:
			toks = append(toks, token{kind: tokDayPadded})
		}
		i += run
	}
	flush()
	return toks
}

// fields is the raw year/month/day decoded from text, before any calendar
// range check.
type fields struct {
	year, month, day int
}

// scan decodes text against toks. It only checks structure: digit counts and
// literals. Missing month or day tokens default to 1.
func scan(text string, toks []token) (fields, bool) {
	f := fields{month: 1, day: 1}
	s := []rune(foldDigits(strings.TrimSpace(text)))
	if len(s) == 0 || len(toks) == 0 {
		return f, false
	}

	pos := 0
	digits := func(min, max int) (int, bool) {
		n := 0
		for pos+n < len(s) && n < max && s[pos+n] >= '0' && s[pos+n] <= '9' {
			n++
		}
		if n < min {
			return 0, false
		}
		v, err := strconv.Atoi(string(s[pos : pos+n]))
		if err != nil {
			return 0, false
		}
		pos += n
		return v, true
	}

	hasYear := false
	for _, t := range toks {
		var ok bool
		switch t.kind {
		case tokLiteral:
			lit := []rune(t.lit)
			if pos+len(lit) > len(s) || string(s[pos:pos+len(lit)]) != t.lit {
				return f, false
			}
			pos += len(lit)
			ok = true
		case tokYear:
			f.year, ok = digits(4, 4)
			hasYear = true
		case tokMonth:
			f.month, ok = digits(1, 2)
		case tokMonthPadded:
			f.month, ok = digits(2, 2)
		case tokDay:
			f.day, ok = digits(1, 2)
		case tokDayPadded:
			f.day, ok = digits(2, 2)
		}
		if !ok {
			return f, false
		}
	}
	return f, hasYear && pos == len(s)
}

func render(f fields, toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.kind {
		case tokLiteral:
			b.WriteString(t.lit)
		case tokYear:
			b.WriteString(pad(f.year, 4))
		case tokMonth:
			b.WriteString(strconv.Itoa(f.month))
		case tokMonthPadded:
			b.WriteString(pad(f.month, 2))
		case tokDay:
			b.WriteString(strconv.Itoa(f.day))
		case tokDayPadded:
			b.WriteString(pad(f.day, 2))
		}
	}
	return b.String()
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// foldDigits maps every Unicode decimal digit (Persian, Arabic-Indic,
// fullwidth, Devanagari, ...) to ASCII.
func foldDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf {
			return r
		}
		if v, ok := digitValue(r); ok {
			return '0' + v
		}
		return r
	}, s)
}

// digitValue returns the value of a decimal digit. Every range of the Nd
// table is a sequence of whole runs 0..9.
func digitValue(r rune) (rune, bool) {
	if !unicode.IsDigit(r) {
		return 0, false
	}
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return (r - lo) % 10, true
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return (r - lo) % 10, true
		}
	}
	return 0, false
}

// ErrAmbiguousLayout is returned by CheckLayout.
var ErrAmbiguousLayout = errors.New("ambiguous layout")

// CheckLayout rejects layouts whose output cannot be parsed back: an unpadded
// M or d directly followed by another number, as in "yyyyMd".
func CheckLayout(layout string) error {
	toks := tokenize(layout)
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].kind != tokMonth && toks[i].kind != tokDay {
			continue
		}
		if toks[i+1].kind != tokLiteral {
			return fmt.Errorf("%w: %q has %s next to %s", ErrAmbiguousLayout,
				layout, layoutText(toks[i]), layoutText(toks[i+1]))
		}
	}
	return nil
}

// MonthLayout strips the day token, and the separator next to it, from
// layout. "yyyy/MM/dd" becomes "yyyy/MM" and "dd-MM-yyyy" becomes "MM-yyyy".
func MonthLayout(layout string) string {
	toks := tokenize(layout)
	out := make([]token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind != tokDay && t.kind != tokDayPadded {
			out = append(out, t)
			continue
		}
		switch {
		case len(out) > 0 && out[len(out)-1].kind == tokLiteral:
			out = out[:len(out)-1]
		case i+1 < len(toks) && toks[i+1].kind == tokLiteral:
			i++
		}
	}
	var b strings.Builder
	for _, t := range out {
		b.WriteString(layoutText(t))
	}
	return b.String()
}

// HasYear reports whether layout contains a year token; layouts without one
// cannot identify a date.
func HasYear(layout string) bool {
	for _, t := range tokenize(layout) {
		if t.kind == tokYear {
			return true
		}
	}
	return false
}

func layoutText(t token) string {
	switch t.kind {
	case tokYear:
		return "yyyy"
	case tokMonth:
		return "M"
	case tokMonthPadded:
		return "MM"
	case tokDay:
		return "d"
	case tokDayPadded:
		return "dd"
	default:
		return t.lit
	}
}
