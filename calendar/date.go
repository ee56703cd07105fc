package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a calendar date with no notion of time of day. Whether the date
// is valid (e.g. Feb 29, or day 31 in a 360-day calendar) depends on the
// calendar it is used with.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare orders two dates chronologically: -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Valid reports whether the date exists under calendar c.
func (d Date) Valid(c Calendar) bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}

	return d.Day <= c.DaysInMonth(d.Year, d.Month)
}

// MonthDay is a recurring day of year ("MM-DD") used for mid-date
// constraints in season indices.
type MonthDay struct {
	Month int
	Day   int
}

// ParseMonthDay parses a "MM-DD" string.
func ParseMonthDay(s string) (MonthDay, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return MonthDay{}, fmt.Errorf("calendar: day-of-year %q is not MM-DD", s)
	}
	m, err1 := strconv.Atoi(parts[0])
	d, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || m < 1 || m > 12 || d < 1 || d > 31 {
		return MonthDay{}, fmt.Errorf("calendar: day-of-year %q is not MM-DD", s)
	}

	return MonthDay{Month: m, Day: d}, nil
}

// Compare orders two month-days within a year.
func (md MonthDay) Compare(other MonthDay) int {
	if md.Month != other.Month {
		return sign(md.Month - other.Month)
	}

	return sign(md.Day - other.Day)
}

// ofDate extracts the month-day of a date.
func ofDate(d Date) MonthDay {
	return MonthDay{Month: d.Month, Day: d.Day}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
