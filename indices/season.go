package indices

import (
	"math"

	"github.com/arloliu/climrun/calendar"
	"github.com/arloliu/climrun/condition"
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/runlen"
	"github.com/arloliu/climrun/spell"
)

// GrowingSeasonLength returns, per period, the number of days between the
// start of the first run of at least window days with tas at or above
// thresh and the start of the first such run of days below thresh at or
// after midDate ("MM-DD"). The start run must begin at or before midDate.
// No qualifying start yields 0; a season that starts but never ends runs to
// the end of the period. An empty midDate removes both constraints.
//
// The ECA&D defaults are thresh 5 degC, window 6 and midDate "07-01" for
// the Northern Hemisphere.
func GrowingSeasonLength(tas *field.Float64, thresh float64, window int, midDate string, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	warm := condition.Compare(tas, condition.Ge, thresh)
	periods, err := boundsFor(warm, axis, freq)
	if err != nil {
		return nil, err
	}

	out := field.WithTimeLen[float64](warm, len(periods))
	space := warm.SpaceSize()

	for k, period := range periods {
		if period.Len() == 0 {
			for p := 0; p < space; p++ {
				out.SetAt(p, k, math.NaN())
			}
			continue
		}

		sub := warm.SliceTime(period.Start, period.End)
		subAxis := axis.Slice(period.Start, period.End)

		startCond, endCond := sub, condition.Not(sub)
		if midDate != "" {
			beforeMid, err := subAxis.DayOfYearMask("", midDate)
			if err != nil {
				return nil, err
			}
			afterMid, err := subAxis.DayOfYearMask(midDate, "")
			if err != nil {
				return nil, err
			}
			if startCond, err = condition.MaskRows(startCond, beforeMid); err != nil {
				return nil, err
			}
			if endCond, err = condition.MaskRows(endCond, afterMid); err != nil {
				return nil, err
			}
		}

		starts, err := runlen.FirstRunIndex(startCond, window)
		if err != nil {
			return nil, err
		}
		ends, err := runlen.FirstRunIndex(endCond, window)
		if err != nil {
			return nil, err
		}

		for p := 0; p < space; p++ {
			start := starts.Data[p]
			if start == runlen.IndexNotFound {
				out.SetAt(p, k, 0)
				continue
			}
			end := ends.Data[p]
			if end == runlen.IndexNotFound || end < start {
				out.SetAt(p, k, float64(period.Len()-start))
				continue
			}
			out.SetAt(p, k, float64(end-start))
		}
	}

	return out, nil
}

// WetSeasonEvents extracts wet-season events over the whole series: an
// event opens on a day with pr at or above wetThresh and closes on the
// first day with pr below dryThresh (the closing day excluded). The event
// aggregate is the total precipitation over the event span. This is the
// two-predicate spell form of rain season detection; note the predicates
// are independent, so days between wetThresh and dryThresh neither open nor
// close an event.
func WetSeasonEvents(pr *field.Float64, wetThresh, dryThresh float64) (*spell.Events, error) {
	wet := condition.Compare(pr, condition.Ge, wetThresh)
	dry := condition.Compare(pr, condition.Lt, dryThresh)

	return spell.Find(wet, dry, spell.WithWeights(pr))
}
