package runlen

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/climrun/field"
)

// Encode computes the run-length-so-far counters of b with a direct linear
// pass: the counter increments at each True and resets to 0 at each False.
// The output shares b's dims and shape. An empty time axis yields an empty
// counter array.
//
// Parameters:
//   - b: Boolean condition array
//
// Returns:
//   - *field.Int32: Run-length-so-far counters, same dims and shape as b
func Encode(b *field.Bool) *field.Int32 {
	out := field.Like[int32](b)

	timeLen := b.TimeLen()
	bStride := b.TimeStride()
	oStride := out.TimeStride()

	for p := 0; p < b.SpaceSize(); p++ {
		base := b.Base(p)
		oBase := out.Base(p)

		var c int32
		for t := 0; t < timeLen; t++ {
			if b.Data[base+t*bStride] {
				c++
			} else {
				c = 0
			}
			out.Data[oBase+t*oStride] = c
		}
	}

	return out
}

// encodeRow computes counters for a single contiguous row. out must have the
// same length as row.
func encodeRow(row []bool, out []int32) {
	var c int32
	for t, v := range row {
		if v {
			c++
		} else {
			c = 0
		}
		out[t] = c
	}
}

// Windowed zeroes every counter belonging to a run whose final length is
// below window, leaving qualifying runs untouched. With window 1 the
// counters are returned unchanged (as a copy).
func Windowed(counters *field.Int32, window int) (*field.Int32, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := field.Like[int32](counters)
	copy(out.Data, counters.Data)
	if window == 1 {
		return out, nil
	}

	timeLen := counters.TimeLen()
	stride := out.TimeStride()

	for p := 0; p < out.SpaceSize(); p++ {
		base := out.Base(p)
		runStart := -1
		for t := 0; t < timeLen; t++ {
			c := out.Data[base+t*stride]
			if c > 0 && runStart < 0 {
				runStart = t
			}
			atEnd := c > 0 && (t == timeLen-1 || out.Data[base+(t+1)*stride] == 0)
			if atEnd {
				if int(c) < window {
					for u := runStart; u <= t; u++ {
						out.Data[base+u*stride] = 0
					}
				}
				runStart = -1
			}
		}
	}

	return out, nil
}

// visitRow walks the runs of a counter row in time order, calling visit with
// each run's start position and length. A run ends where its counter is
// positive and the next value resets (or the row ends).
func visitRow(counters []int32, visit func(start, length int)) {
	n := len(counters)
	for t := 0; t < n; t++ {
		c := counters[t]
		if c == 0 {
			continue
		}
		if t == n-1 || counters[t+1] == 0 {
			visit(t-int(c)+1, int(c))
		}
	}
}

// parallelSpace runs worker over disjoint space-point ranges, one goroutine
// per CPU. Workers own their range exclusively, so they can keep private
// scratch and write disjoint output slots without synchronization.
func parallelSpace(space int, worker func(lo, hi int) error) error {
	procs := runtime.GOMAXPROCS(0)
	if space < 2 || procs < 2 {
		if space == 0 {
			return nil
		}

		return worker(0, space)
	}

	if procs > space {
		procs = space
	}

	var g errgroup.Group
	per := (space + procs - 1) / procs
	for lo := 0; lo < space; lo += per {
		lo := lo
		hi := min(lo+per, space)
		g.Go(func() error {
			return worker(lo, hi)
		})
	}

	return g.Wait()
}
