// Package resample applies run statistics independently within each period
// of a resampling frequency. Periods are treated as independent encodings:
// the run-length counter implicitly resets at every period start, so a run
// never spans a period boundary, and a period with zero timesteps yields
// NaN rather than 0.
package resample

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/climrun/calendar"
	"github.com/arloliu/climrun/field"
)

// IntStatistic is any whole-series statistic producing one integer per
// space point, e.g. runlen.LongestRun bound to a window.
type IntStatistic func(*field.Bool) (*field.Int, error)

// FloatStatistic is any whole-series statistic producing one float per
// space point.
type FloatStatistic func(*field.Bool) (*field.Float64, error)

// Apply computes stat independently for each period and assembles the
// results along the time axis position, one slot per period. Empty periods
// yield NaN. Periods are evaluated in parallel; the statistic must be a
// pure function (every statistic in this module is).
func Apply(b *field.Bool, periods []calendar.Period, stat IntStatistic) (*field.Float64, error) {
	return apply(b, periods, func(sub *field.Bool) ([]float64, error) {
		res, err := stat(sub)
		if err != nil {
			return nil, err
		}
		vals := make([]float64, len(res.Data))
		for i, v := range res.Data {
			vals[i] = float64(v)
		}

		return vals, nil
	})
}

// ApplyFloat is Apply for float-valued statistics.
func ApplyFloat(b *field.Bool, periods []calendar.Period, stat FloatStatistic) (*field.Float64, error) {
	return apply(b, periods, func(sub *field.Bool) ([]float64, error) {
		res, err := stat(sub)
		if err != nil {
			return nil, err
		}

		return res.Data, nil
	})
}

// ApplyIndex is Apply for position statistics (first/last run index): local
// period-relative indices are shifted to positions on the full axis, and
// the not-found sentinel becomes NaN.
func ApplyIndex(b *field.Bool, periods []calendar.Period, stat IntStatistic) (*field.Float64, error) {
	out, err := apply(b, periods, func(sub *field.Bool) ([]float64, error) {
		res, err := stat(sub)
		if err != nil {
			return nil, err
		}
		vals := make([]float64, len(res.Data))
		for i, v := range res.Data {
			if v < 0 {
				vals[i] = math.NaN()
			} else {
				vals[i] = float64(v)
			}
		}

		return vals, nil
	})
	if err != nil {
		return nil, err
	}

	// Shift local indices to the full axis.
	for k, period := range periods {
		for p := 0; p < out.SpaceSize(); p++ {
			if v := out.At(p, k); !math.IsNaN(v) {
				out.SetAt(p, k, v+float64(period.Start))
			}
		}
	}

	return out, nil
}

// apply is the shared period loop: slice, evaluate, assemble.
func apply(b *field.Bool, periods []calendar.Period, stat func(*field.Bool) ([]float64, error)) (*field.Float64, error) {
	if err := validatePeriods(periods, b.TimeLen()); err != nil {
		return nil, err
	}

	out := field.WithTimeLen[float64](b, len(periods))
	space := b.SpaceSize()

	g := errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, period := range periods {
		k, period := k, period
		g.Go(func() error {
			if period.Len() == 0 {
				for p := 0; p < space; p++ {
					out.SetAt(p, k, math.NaN())
				}

				return nil
			}

			vals, err := stat(b.SliceTime(period.Start, period.End))
			if err != nil {
				return err
			}
			for p := 0; p < space; p++ {
				out.SetAt(p, k, vals[p])
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// AndRunLength resamples b by freq on axis and applies stat per period,
// mirroring the resample-then-encode order used by the indices layer.
func AndRunLength(b *field.Bool, axis calendar.TimeAxis, freq string, stat IntStatistic) (*field.Float64, error) {
	periods, err := boundsFor(b, axis, freq)
	if err != nil {
		return nil, err
	}

	return Apply(b, periods, stat)
}

// boundsFor validates the axis against b and cuts it by freq.
func boundsFor(b *field.Bool, axis calendar.TimeAxis, freq string) ([]calendar.Period, error) {
	if axis.N != b.TimeLen() {
		return nil, &field.ShapeMismatchError{
			Op:   "resample: axis",
			Want: []int{b.TimeLen()},
			Got:  []int{axis.N},
		}
	}

	return axis.PeriodBoundaries(freq)
}

// validatePeriods enforces ordered, non-overlapping periods within the time
// range.
func validatePeriods(periods []calendar.Period, timeLen int) error {
	prevEnd := 0
	for i, p := range periods {
		if p.Start < prevEnd || p.End < p.Start || p.End > timeLen {
			return fmt.Errorf("resample: period %d [%d, %d) overlaps or exceeds time length %d", i, p.Start, p.End, timeLen)
		}
		prevEnd = p.End
	}

	return nil
}
