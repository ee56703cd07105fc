package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFrequency reports a resampling frequency string this
// package does not recognize. It is raised when boundaries are built, never
// deferred to evaluation time.
var ErrUnsupportedFrequency = errors.New("calendar: unsupported resampling frequency")

// Period is one resampling period: the [Start, End) index range on the
// axis, labeled with the date of its first position.
type Period struct {
	Start int
	End   int
	Label Date
}

// Len returns the number of time steps in the period.
func (p Period) Len() int {
	return p.End - p.Start
}

// frequency is a parsed resampling frequency.
type frequency struct {
	base   byte // 'D', 'W', 'M', 'Q' or 'Y'
	anchor int  // anchor month for 'Y' and 'Q' bases, 1-12
}

var anchorMonths = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// parseFrequency accepts the start-anchored subset of frequency codes the
// indices layer uses: "D", "W", "MS", "QS", "QS-<MMM>", "YS", "YS-<MMM>".
func parseFrequency(freq string) (frequency, error) {
	code, anchor, hasAnchor := strings.Cut(freq, "-")

	f := frequency{anchor: 1}
	switch code {
	case "D":
		f.base = 'D'
	case "W":
		f.base = 'W'
	case "MS":
		f.base = 'M'
	case "QS":
		f.base = 'Q'
	case "YS":
		f.base = 'Y'
	default:
		return frequency{}, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, freq)
	}

	if hasAnchor {
		if f.base != 'Q' && f.base != 'Y' {
			return frequency{}, fmt.Errorf("%w: %q (anchor not allowed for %q)", ErrUnsupportedFrequency, freq, code)
		}
		m, ok := anchorMonths[anchor]
		if !ok {
			return frequency{}, fmt.Errorf("%w: %q (unknown anchor month %q)", ErrUnsupportedFrequency, freq, anchor)
		}
		f.anchor = m
	}

	return f, nil
}

// PeriodBoundaries cuts the axis into the non-overlapping, ordered periods
// of the given frequency. The first and last periods are truncated to the
// axis range. An empty axis yields no periods.
func (a TimeAxis) PeriodBoundaries(freq string) ([]Period, error) {
	f, err := parseFrequency(freq)
	if err != nil {
		return nil, err
	}
	if a.N == 0 {
		return nil, nil
	}

	var periods []Period
	ord := a.Cal.ordinal(a.Start)

	open := Period{Start: 0, Label: a.Start}
	prevKey := f.key(a.Start, 0)
	for i := 1; i < a.N; i++ {
		d := a.Cal.fromOrdinal(ord + i)
		key := f.key(d, i)
		if key != prevKey {
			open.End = i
			periods = append(periods, open)
			open = Period{Start: i, Label: d}
			prevKey = key
		}
	}
	open.End = a.N
	periods = append(periods, open)

	return periods, nil
}

// key maps a date (or raw position, for fixed-width frequencies) to its
// period identity. Consecutive positions share a period iff their keys are
// equal.
func (f frequency) key(d Date, i int) int {
	switch f.base {
	case 'D':
		return i
	case 'W':
		return i / 7
	case 'M':
		return d.Year*12 + d.Month - 1
	case 'Q':
		return floorDiv(d.Year*12+d.Month-f.anchor, 3)
	default: // 'Y'
		return floorDiv(d.Year*12+d.Month-f.anchor, 12)
	}
}
