package indices

import (
	"math"

	"github.com/arloliu/climrun/calendar"
	"github.com/arloliu/climrun/condition"
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/resample"
	"github.com/arloliu/climrun/runlen"
)

// HeatWaveIndex returns the number of days per period that belong to a heat
// wave: a run of at least window consecutive days with tasmax above thresh.
// The ECA&D default is window 5 over 25 degC.
func HeatWaveIndex(tasmax *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	over := condition.Compare(tasmax, condition.Gt, thresh)

	return resample.AndRunLength(over, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.TotalInRuns(b, window)
	})
}

// HotSpellFrequency returns the number of distinct hot spells per period:
// runs of at least window consecutive days with tasmax above thresh.
func HotSpellFrequency(tasmax *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	over := condition.Compare(tasmax, condition.Gt, thresh)

	return resample.AndRunLength(over, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.CountRuns(b, window)
	})
}

// HotSpellMaxLength returns the length of the longest hot spell per period.
func HotSpellMaxLength(tasmax *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	over := condition.Compare(tasmax, condition.Gt, thresh)

	return resample.AndRunLength(over, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.LongestRun(b, window)
	})
}

// HotSpellMaxMagnitude returns the magnitude of the most intense hot spell
// per period: the largest sum of (tasmax - thresh) over any single run of
// at least window days above thresh.
func HotSpellMaxMagnitude(tasmax *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	over := condition.Compare(tasmax, condition.Gt, thresh)
	magnitude, err := condition.ExceedanceMagnitude(tasmax, condition.Gt, thresh)
	if err != nil {
		return nil, err
	}

	periods, err := boundsFor(over, axis, freq)
	if err != nil {
		return nil, err
	}

	out := field.WithTimeLen[float64](over, len(periods))
	for k, period := range periods {
		if period.Len() == 0 {
			for p := 0; p < out.SpaceSize(); p++ {
				out.SetAt(p, k, math.NaN())
			}
			continue
		}

		res, err := runlen.MaxRunSum(
			over.SliceTime(period.Start, period.End),
			magnitude.SliceTime(period.Start, period.End),
			window,
		)
		if err != nil {
			return nil, err
		}
		for p := 0; p < out.SpaceSize(); p++ {
			out.SetAt(p, k, res.Data[p])
		}
	}

	return out, nil
}

// ColdSpellDays returns the number of days per period that belong to a cold
// spell: a run of at least window consecutive days with tas below thresh.
func ColdSpellDays(tas *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	under := condition.Compare(tas, condition.Lt, thresh)

	return resample.AndRunLength(under, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.TotalInRuns(b, window)
	})
}

// FirstDayTemperatureAbove returns, per period, the position on the full
// axis of the first day opening a run of at least window days with tas
// above thresh, or NaN when no period run qualifies. Use DayOfYear to
// translate positions to calendar days.
func FirstDayTemperatureAbove(tas *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	over := condition.Compare(tas, condition.Gt, thresh)
	periods, err := boundsFor(over, axis, freq)
	if err != nil {
		return nil, err
	}

	return resample.ApplyIndex(over, periods, func(b *field.Bool) (*field.Int, error) {
		return runlen.FirstRunIndex(b, window)
	})
}

// FirstDayTemperatureBelow is FirstDayTemperatureAbove for tas below
// thresh (e.g. first frost day).
func FirstDayTemperatureBelow(tas *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	under := condition.Compare(tas, condition.Lt, thresh)
	periods, err := boundsFor(under, axis, freq)
	if err != nil {
		return nil, err
	}

	return resample.ApplyIndex(under, periods, func(b *field.Bool) (*field.Int, error) {
		return runlen.FirstRunIndex(b, window)
	})
}

// DayOfYear translates axis positions (as produced by the FirstDay indices)
// to 1-based days of year under the axis calendar, preserving NaN.
func DayOfYear(positions *field.Float64, axis calendar.TimeAxis) *field.Float64 {
	out := field.Like[float64](positions)
	for i, v := range positions.Data {
		if math.IsNaN(v) {
			out.Data[i] = math.NaN()
			continue
		}
		d := axis.DateForIndex(int(v))
		out.Data[i] = float64(axis.Cal.DayOfYear(d))
	}

	return out
}

// boundsFor validates the axis length against b and cuts it by freq.
func boundsFor(b *field.Bool, axis calendar.TimeAxis, freq string) ([]calendar.Period, error) {
	if axis.N != b.TimeLen() {
		return nil, &field.ShapeMismatchError{
			Op:   "indices: axis",
			Want: []int{b.TimeLen()},
			Got:  []int{axis.N},
		}
	}

	return axis.PeriodBoundaries(freq)
}
