package calendar

import "time"

var gregorianMonths = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Gregorian is the Adapter for the Gregorian calendar.
type Gregorian struct {
	now func() time.Time
}

var _ Adapter = (*Gregorian)(nil)

// NewGregorian creates a Gregorian adapter.
func NewGregorian(opts ...Option) *Gregorian {
	o := buildOptions(opts)
	return &Gregorian{now: o.now}
}

func (g *Gregorian) System() System { return SystemGregorian }

func (g *Gregorian) Parse(text, layout string) (Date, bool) {
	return parseDate(gregorianCivil{}, text, layout)
}

func (g *Gregorian) Format(d Date, layout string) string {
	return formatDate(gregorianCivil{}, d, layout)
}

func (g *Gregorian) IsValidFormat(text, layout string) bool {
	_, ok := scan(text, tokenize(layout))
	return ok
}

func (g *Gregorian) Today() Date { return FromTime(g.now()) }

func (g *Gregorian) Compare(a, b Date) int   { return a.Compare(b) }
func (g *Gregorian) IsBefore(a, b Date) bool { return a.Before(b) }
func (g *Gregorian) IsAfter(a, b Date) bool  { return a.After(b) }
func (g *Gregorian) Max(dates ...Date) Date  { return maxDate(dates) }

func (g *Gregorian) Split(d Date) (int, int, int) {
	return jdnToGregorian(d.jdn)
}

func (g *Gregorian) Make(year, month, day int) (Date, bool) {
	return makeDate(gregorianCivil{}, year, month, day)
}

func (g *Gregorian) DaysInMonth(year, month int) int {
	return gregorianCivil{}.daysInMonth(year, month)
}

func (g *Gregorian) AddMonths(d Date, n int) Date {
	return addMonths(gregorianCivil{}, d, n)
}

func (g *Gregorian) AddYears(d Date, n int) Date {
	return addMonths(gregorianCivil{}, d, 12*n)
}

func (g *Gregorian) FirstWeekday() time.Weekday { return time.Sunday }

func (g *Gregorian) MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return gregorianMonths[month-1]
}

type gregorianCivil struct{}

func (gregorianCivil) toJDN(y, m, d int) int           { return gregorianToJDN(y, m, d) }
func (gregorianCivil) fromJDN(jdn int) (int, int, int) { return jdnToGregorian(jdn) }
func (gregorianCivil) yearRange() (int, int)           { return 1, 9999 }

func (gregorianCivil) daysInMonth(y, m int) int {
	switch m {
	case 2:
		if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
