package calendar

import "fmt"

// TimeAxis is a daily-resolution time coordinate: N consecutive days from
// Start under calendar Cal. It is the boundary contract the run-length core
// relies on: a bijection between positions [0, N) and dates.
type TimeAxis struct {
	Start Date
	Cal   Calendar
	N     int
}

// NewTimeAxis creates a daily time axis of n steps starting at start.
func NewTimeAxis(start Date, cal Calendar, n int) (TimeAxis, error) {
	if n < 0 {
		return TimeAxis{}, fmt.Errorf("calendar: axis length %d < 0", n)
	}
	if !start.Valid(cal) {
		return TimeAxis{}, fmt.Errorf("calendar: start date %s invalid in %s calendar", start, cal)
	}

	return TimeAxis{Start: start, Cal: cal, N: n}, nil
}

// DateForIndex returns the date at position i. It panics when i is outside
// [0, N); positions come from statistics over the same axis and are
// validated there.
func (a TimeAxis) DateForIndex(i int) Date {
	if i < 0 || i >= a.N {
		panic(fmt.Sprintf("calendar: index %d outside axis of length %d", i, a.N))
	}

	return a.Cal.fromOrdinal(a.Cal.ordinal(a.Start) + i)
}

// IndexForDate returns the position of date d, or -1 when d falls outside
// the axis.
func (a TimeAxis) IndexForDate(d Date) int {
	i := a.Cal.ordinal(d) - a.Cal.ordinal(a.Start)
	if i < 0 || i >= a.N {
		return -1
	}

	return i
}

// Slice returns the sub-axis covering positions [lo, hi).
func (a TimeAxis) Slice(lo, hi int) TimeAxis {
	if lo < 0 || hi < lo || hi > a.N {
		panic(fmt.Sprintf("calendar: bad slice [%d, %d) for axis of length %d", lo, hi, a.N))
	}

	start := a.Cal.fromOrdinal(a.Cal.ordinal(a.Start) + lo)

	return TimeAxis{Start: start, Cal: a.Cal, N: hi - lo}
}

// DayOfYearMask returns, per position, whether the position's month-day
// falls inside the [earliest, latest] window. Empty strings leave the
// corresponding bound open. The window does not wrap around the year end.
func (a TimeAxis) DayOfYearMask(earliest, latest string) ([]bool, error) {
	var lo, hi MonthDay
	var hasLo, hasHi bool
	var err error

	if earliest != "" {
		if lo, err = ParseMonthDay(earliest); err != nil {
			return nil, err
		}
		hasLo = true
	}
	if latest != "" {
		if hi, err = ParseMonthDay(latest); err != nil {
			return nil, err
		}
		hasHi = true
	}

	mask := make([]bool, a.N)
	ord := a.Cal.ordinal(a.Start)
	for i := range mask {
		md := ofDate(a.Cal.fromOrdinal(ord + i))
		ok := true
		if hasLo && md.Compare(lo) < 0 {
			ok = false
		}
		if hasHi && md.Compare(hi) > 0 {
			ok = false
		}
		mask[i] = ok
	}

	return mask, nil
}
