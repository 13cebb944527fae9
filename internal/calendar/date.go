package calendar

import (
	"fmt"
	"time"
)

// Date is a single day, independent of any calendar system. Internally it is a
// Julian Day Number, so two dates produced by different adapters compare
// correctly. The zero value means "no date".
type Date struct {
	jdn int
}

// FromTime returns the day t falls on in its own location.
func FromTime(t time.Time) Date {
	return Date{jdn: gregorianToJDN(t.Year(), int(t.Month()), t.Day())}
}

// IsZero reports whether d is the absent date.
func (d Date) IsZero() bool {
	return d.jdn == 0
}

// AddDays returns d shifted by n days. The zero date stays zero.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{jdn: d.jdn + n}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.jdn < o.jdn:
		return -1
	case d.jdn > o.jdn:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(o Date) bool { return d.jdn < o.jdn }
func (d Date) After(o Date) bool  { return d.jdn > o.jdn }
func (d Date) Equal(o Date) bool  { return d.jdn == o.jdn }

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return time.Weekday((d.jdn + 1) % 7)
}

// Time returns midnight of d in loc. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, dd := jdnToGregorian(d.jdn)
	return time.Date(y, time.Month(m), dd, 0, 0, 0, 0, loc)
}

// String renders d as an ISO 8601 Gregorian date, for logs and debugging.
func (d Date) String() string {
	if d.IsZero() {
		return "<none>"
	}
	y, m, dd := jdnToGregorian(d.jdn)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, dd)
}

// gregorianToJDN and jdnToGregorian are valid for the proleptic Gregorian
// calendar. Division truncates toward zero on purpose.
func gregorianToJDN(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func jdnToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j = j + (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
