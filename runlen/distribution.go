package runlen

import (
	"math"

	"github.com/arloliu/climrun/field"
)

// RunsDim names the padded capacity dimension of a Distribution.
const RunsDim = "runs"

// Distribution is the per-space-point sequence of qualifying run lengths in
// a padded, fixed-capacity layout: the number of runs is data-dependent, so
// a fixed-shape array engine needs a safe upper bound (at most every other
// step starts a run) plus a valid count marking used slots. Downstream
// reducers must treat slots at or beyond the valid count as absent, not
// zero.
type Distribution struct {
	// Lengths holds the run lengths: the time dim is replaced by RunsDim of
	// extent Capacity. Unused slots are zero but reducers rely on Valid, not
	// on the zero value.
	Lengths *field.Int32

	// Valid holds the number of qualifying runs per space point.
	Valid *field.Int

	capacity int
}

// RunLengthDistribution collects every run of at least window steps, per
// space point and in time order.
func RunLengthDistribution(b *field.Bool, window int) (*Distribution, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	capacity := (b.TimeLen() + 1) / 2
	d := &Distribution{
		Lengths:  field.AppendRunsDim[int32](b, RunsDim, capacity),
		Valid:    field.Reduced[int](b),
		capacity: capacity,
	}

	err := visitRuns(b, func(p, _, length int) {
		if length < window {
			return
		}
		slot := d.Valid.Data[p]
		d.Lengths.SetAt(p, slot, int32(length))
		d.Valid.Data[p] = slot + 1
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Capacity returns the padded slot count of the RunsDim axis.
func (d *Distribution) Capacity() int {
	return d.capacity
}

// reduce folds the valid lengths of each space point. empty is the output
// for points with no qualifying run.
func (d *Distribution) reduce(empty float64, fold func(lengths []int32) float64) *field.Float64 {
	out := field.Reduced[float64](d.Lengths)
	scratch := make([]int32, d.capacity)

	for p := 0; p < d.Valid.SpaceSize(); p++ {
		n := d.Valid.Data[p]
		if n == 0 {
			out.Data[p] = empty
			continue
		}
		for i := 0; i < n; i++ {
			scratch[i] = d.Lengths.At(p, i)
		}
		out.Data[p] = fold(scratch[:n])
	}

	return out
}

// Max returns the largest qualifying run length per space point, NaN when
// none. Use LongestRun for the 0-valued convention.
func (d *Distribution) Max() *field.Float64 {
	return d.reduce(math.NaN(), func(lengths []int32) float64 {
		m := lengths[0]
		for _, l := range lengths[1:] {
			if l > m {
				m = l
			}
		}

		return float64(m)
	})
}

// Min returns the smallest qualifying run length per space point, NaN when
// none.
func (d *Distribution) Min() *field.Float64 {
	return d.reduce(math.NaN(), func(lengths []int32) float64 {
		m := lengths[0]
		for _, l := range lengths[1:] {
			if l < m {
				m = l
			}
		}

		return float64(m)
	})
}

// Mean returns the mean qualifying run length per space point, NaN when
// none.
func (d *Distribution) Mean() *field.Float64 {
	return d.reduce(math.NaN(), mean)
}

// Std returns the population standard deviation of qualifying run lengths
// per space point, NaN when none (0 for a single run).
func (d *Distribution) Std() *field.Float64 {
	return d.reduce(math.NaN(), func(lengths []int32) float64 {
		mu := mean(lengths)
		var acc float64
		for _, l := range lengths {
			dev := float64(l) - mu
			acc += dev * dev
		}

		return math.Sqrt(acc / float64(len(lengths)))
	})
}

// Sum returns the total of qualifying run lengths per space point, 0 when
// none (matching TotalInRuns).
func (d *Distribution) Sum() *field.Float64 {
	return d.reduce(0, func(lengths []int32) float64 {
		var acc float64
		for _, l := range lengths {
			acc += float64(l)
		}

		return acc
	})
}

func mean(lengths []int32) float64 {
	var acc float64
	for _, l := range lengths {
		acc += float64(l)
	}

	return acc / float64(len(lengths))
}
