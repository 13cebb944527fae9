package calendar

import "time"

var jalaliMonths = [...]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

// Jalali years where the 33-year leap cycle shifts. The arithmetic below is
// only defined between the first and last entries.
var jalaliBreaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

const (
	jalaliMinYear = 1
	jalaliMaxYear = 3177
)

// Jalali is the Adapter for the Jalali (Solar Hijri) calendar.
type Jalali struct {
	now func() time.Time
}

var _ Adapter = (*Jalali)(nil)

// NewJalali creates a Jalali adapter.
func NewJalali(opts ...Option) *Jalali {
	o := buildOptions(opts)
	return &Jalali{now: o.now}
}

func (j *Jalali) System() System { return SystemJalali }

func (j *Jalali) Parse(text, layout string) (Date, bool) {
	return parseDate(jalaliCivil{}, text, layout)
}

func (j *Jalali) Format(d Date, layout string) string {
	return formatDate(jalaliCivil{}, d, layout)
}

func (j *Jalali) IsValidFormat(text, layout string) bool {
	_, ok := scan(text, tokenize(layout))
	return ok
}

func (j *Jalali) Today() Date { return FromTime(j.now()) }

func (j *Jalali) Compare(a, b Date) int   { return a.Compare(b) }
func (j *Jalali) IsBefore(a, b Date) bool { return a.Before(b) }
func (j *Jalali) IsAfter(a, b Date) bool  { return a.After(b) }
func (j *Jalali) Max(dates ...Date) Date  { return maxDate(dates) }

func (j *Jalali) Split(d Date) (int, int, int) {
	return jalaliCivil{}.fromJDN(d.jdn)
}

func (j *Jalali) Make(year, month, day int) (Date, bool) {
	return makeDate(jalaliCivil{}, year, month, day)
}

func (j *Jalali) DaysInMonth(year, month int) int {
	if year < jalaliMinYear || year > jalaliMaxYear {
		return 0
	}
	return jalaliCivil{}.daysInMonth(year, month)
}

func (j *Jalali) AddMonths(d Date, n int) Date {
	return addMonths(jalaliCivil{}, d, n)
}

func (j *Jalali) AddYears(d Date, n int) Date {
	return addMonths(jalaliCivil{}, d, 12*n)
}

// FirstWeekday is Saturday, the first day of the Iranian week.
func (j *Jalali) FirstWeekday() time.Weekday { return time.Saturday }

func (j *Jalali) MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return jalaliMonths[month-1]
}

// IsLeapJalali reports whether the Jalali year has 366 days.
func IsLeapJalali(year int) bool {
	if year < jalaliMinYear || year > jalaliMaxYear {
		return false
	}
	leap, _, _ := jalaliCycle(year)
	return leap == 0
}

type jalaliCivil struct{}

func (jalaliCivil) yearRange() (int, int) { return jalaliMinYear, jalaliMaxYear }

func (jalaliCivil) daysInMonth(y, m int) int {
	switch {
	case m < 1 || m > 12:
		return 0
	case m <= 6:
		return 31
	case m <= 11:
		return 30
	case IsLeapJalali(y):
		return 30
	default:
		return 29
	}
}

func (jalaliCivil) toJDN(jy, jm, jd int) int {
	_, gy, march := jalaliCycle(jy)
	return gregorianToJDN(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func (jalaliCivil) fromJDN(jdn int) (jy, jm, jd int) {
	gy, _, _ := jdnToGregorian(jdn)
	jy = gy - 621
	leap, _, march := jalaliCycle(jy)
	k := jdn - gregorianToJDN(gy, 3, march)
	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, k%31 + 1
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, k%30 + 1
}

// jalaliCycle returns, for Jalali year jy, the number of years since the last
// leap year (0 means jy is leap), the Gregorian year in which jy starts and
// the day in March of that year on which Farvardin 1 falls.
func jalaliCycle(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := jalaliBreaks[0]
	jump := 0
	for i := 1; i < len(jalaliBreaks); i++ {
		jm := jalaliBreaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}
	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}
	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}
