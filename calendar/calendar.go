package calendar

// Calendar identifies the day-count convention of a time axis.
type Calendar uint8

const (
	Standard Calendar = 0x1 // Standard is the proleptic Gregorian calendar.
	NoLeap   Calendar = 0x2 // NoLeap has 365-day years, never a Feb 29.
	AllLeap  Calendar = 0x3 // AllLeap has 366-day years, always a Feb 29.
	Day360   Calendar = 0x4 // Day360 has twelve 30-day months.
)

func (c Calendar) String() string {
	switch c {
	case Standard:
		return "standard"
	case NoLeap:
		return "noleap"
	case AllLeap:
		return "all_leap"
	case Day360:
		return "360_day"
	default:
		return "unknown"
	}
}

// cumulative days at the start of each month for 365- and 366-day years.
var (
	cumDays365 = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	cumDays366 = [12]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}
)

// IsLeapYear reports whether year contains a February 29 under c.
func (c Calendar) IsLeapYear(year int) bool {
	switch c {
	case NoLeap, Day360:
		return false
	case AllLeap:
		return true
	default:
		return year%4 == 0 && (year%100 != 0 || year%400 == 0)
	}
}

// DaysInYear returns the number of days in year under c.
func (c Calendar) DaysInYear(year int) int {
	switch c {
	case Day360:
		return 360
	case NoLeap:
		return 365
	case AllLeap:
		return 366
	default:
		if c.IsLeapYear(year) {
			return 366
		}

		return 365
	}
}

// DaysInMonth returns the number of days in the given month of year under c.
func (c Calendar) DaysInMonth(year, month int) int {
	if c == Day360 {
		return 30
	}
	if month == 2 && c.IsLeapYear(year) {
		return 29
	}

	return [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}[month-1]
}

// DayOfYear returns the 1-based day of year of d under c.
func (c Calendar) DayOfYear(d Date) int {
	return c.ordinal(d) - c.ordinal(Date{Year: d.Year, Month: 1, Day: 1}) + 1
}

// ordinal returns the day count from the calendar's epoch (year 0, Jan 1)
// to the given date. It is the basis of all index arithmetic; only
// differences of ordinals are meaningful across calendars.
func (c Calendar) ordinal(d Date) int {
	switch c {
	case Day360:
		return d.Year*360 + (d.Month-1)*30 + d.Day - 1
	case NoLeap:
		return d.Year*365 + cumDays365[d.Month-1] + d.Day - 1
	case AllLeap:
		return d.Year*366 + cumDays366[d.Month-1] + d.Day - 1
	default:
		return gregorianOrdinal(d)
	}
}

// fromOrdinal inverts ordinal.
func (c Calendar) fromOrdinal(ord int) Date {
	switch c {
	case Day360:
		year, rem := floorDivMod(ord, 360)
		return Date{Year: year, Month: rem/30 + 1, Day: rem%30 + 1}
	case NoLeap:
		year, rem := floorDivMod(ord, 365)
		m, d := monthDayFromYearDay(rem, cumDays365)
		return Date{Year: year, Month: m, Day: d}
	case AllLeap:
		year, rem := floorDivMod(ord, 366)
		m, d := monthDayFromYearDay(rem, cumDays366)
		return Date{Year: year, Month: m, Day: d}
	default:
		return gregorianFromOrdinal(ord)
	}
}

// monthDayFromYearDay resolves a 0-based day of year against a cumulative
// month table.
func monthDayFromYearDay(yd int, cum [12]int) (month, day int) {
	m := 11
	for i := 1; i < 12; i++ {
		if yd < cum[i] {
			m = i - 1
			break
		}
	}

	return m + 1, yd - cum[m] + 1
}

// gregorianOrdinal counts days from 0000-01-01 in the proleptic Gregorian
// calendar, using the standard civil-from-days construction with 400-year
// eras.
func gregorianOrdinal(d Date) int {
	y := d.Year
	if d.Month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (d.Month + 9) % 12
	doy := (153*mp+2)/5 + d.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy

	// Shift so that 0000-01-01 is ordinal 0 (0000-03-01 is day 60 of the
	// leap year 0).
	return era*146097 + doe + 60
}

// gregorianFromOrdinal inverts gregorianOrdinal.
func gregorianFromOrdinal(ord int) Date {
	z := ord - 60
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := (mp+2)%12 + 1
	if m <= 2 {
		y++
	}

	return Date{Year: y, Month: m, Day: d}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}

func floorDivMod(a, b int) (q, r int) {
	q = floorDiv(a, b)
	return q, a - q*b
}
