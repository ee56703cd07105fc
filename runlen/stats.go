package runlen

import (
	"context"

	"github.com/arloliu/climrun/chunk"
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/internal/pool"
)

// visitRuns walks every run of b, calling visit with (space point, start,
// length) in time order per space point. Space points are processed in
// parallel ranges; visit is called only from the worker owning p.
func visitRuns(b *field.Bool, visit func(p, start, length int)) error {
	timeLen := b.TimeLen()

	return parallelSpace(b.SpaceSize(), func(lo, hi int) error {
		row, rowDone := pool.GetBoolSlice(timeLen)
		defer rowDone()
		counters, cDone := pool.GetInt32Slice(timeLen)
		defer cDone()

		for p := lo; p < hi; p++ {
			b.CopyRow(p, row)
			encodeRow(row, counters)
			visitRow(counters, func(start, length int) {
				visit(p, start, length)
			})
		}

		return nil
	})
}

// LongestRun returns, per space point, the length of the longest run of
// True values, counting only runs of at least window steps. Space points
// with no qualifying run get 0.
func LongestRun(b *field.Bool, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := field.Reduced[int](b)
	err := visitRuns(b, func(p, _, length int) {
		if length >= window && length > out.Data[p] {
			out.Data[p] = length
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CountRuns returns, per space point, the number of distinct runs of at
// least window steps.
func CountRuns(b *field.Bool, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := field.Reduced[int](b)
	err := visitRuns(b, func(p, _, length int) {
		if length >= window {
			out.Data[p]++
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// TotalInRuns returns, per space point, the total number of True steps
// belonging to runs of at least window steps ("days in spells of at least
// window days").
func TotalInRuns(b *field.Bool, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := field.Reduced[int](b)
	err := visitRuns(b, func(p, _, length int) {
		if length >= window {
			out.Data[p] += length
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FirstRunIndex returns, per space point, the start index of the first run
// of at least window steps, or IndexNotFound when no run qualifies.
func FirstRunIndex(b *field.Bool, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := notFound(b)
	err := visitRuns(b, func(p, start, length int) {
		if length >= window && out.Data[p] == IndexNotFound {
			out.Data[p] = start
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// LastRunIndex returns, per space point, the start index of the last run of
// at least window steps, or IndexNotFound when no run qualifies.
func LastRunIndex(b *field.Bool, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := notFound(b)
	err := visitRuns(b, func(p, start, length int) {
		if length >= window {
			out.Data[p] = start
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// MaxRunSum returns, per space point, the largest sum of weights over any
// single run of at least window steps, or 0 when no run qualifies. It backs
// magnitude indices such as hot spell maximum magnitude, where weights are
// the per-day exceedance over the threshold.
func MaxRunSum(b *field.Bool, weights *field.Float64, window int) (*field.Float64, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}
	if err := field.CheckSameShape("runlen.MaxRunSum: weights", b, weights); err != nil {
		return nil, err
	}

	out := field.Reduced[float64](b)
	err := visitRuns(b, func(p, start, length int) {
		if length < window {
			return
		}
		base := weights.Base(p)
		stride := weights.TimeStride()
		var sum float64
		for t := start; t < start+length; t++ {
			sum += weights.Data[base+t*stride]
		}
		if sum > out.Data[p] {
			out.Data[p] = sum
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// notFound allocates a per-space-point index array filled with the sentinel.
func notFound(b *field.Bool) *field.Int {
	out := field.Reduced[int](b)
	for i := range out.Data {
		out.Data[i] = IndexNotFound
	}

	return out
}

// Chunked statistic variants. Each encodes the series with EncodeChunked and
// streams the resulting counter blocks. For a store-backed series the counter
// blocks spill into the input's store and are realized one at a time, so peak
// residency stays at the blocks in flight regardless of the time length; an
// unbacked series is fully resident to begin with. The results are identical
// to the eager variants on the materialized input.

// reduceChunked shares the encode-then-stream plumbing of the chunked
// statistics: encode the series, fold every completed run into the caller's
// visit, then drop the transient counter blocks from the store.
func reduceChunked(ctx context.Context, s *chunk.BoolSeries, visit func(p, start, length int)) error {
	counters, err := EncodeChunked(ctx, s)
	if err != nil {
		return err
	}
	defer counters.Drop()

	return visitRunsChunked(counters, visit)
}

// LongestRunChunked is the chunked-path counterpart of LongestRun.
func LongestRunChunked(ctx context.Context, s *chunk.BoolSeries, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := reducedForSeries[int](s)
	err := reduceChunked(ctx, s, func(p, _, length int) {
		if length >= window && length > out.Data[p] {
			out.Data[p] = length
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CountRunsChunked is the chunked-path counterpart of CountRuns.
func CountRunsChunked(ctx context.Context, s *chunk.BoolSeries, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := reducedForSeries[int](s)
	err := reduceChunked(ctx, s, func(p, _, length int) {
		if length >= window {
			out.Data[p]++
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// TotalInRunsChunked is the chunked-path counterpart of TotalInRuns.
func TotalInRunsChunked(ctx context.Context, s *chunk.BoolSeries, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := reducedForSeries[int](s)
	err := reduceChunked(ctx, s, func(p, _, length int) {
		if length >= window {
			out.Data[p] += length
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FirstRunIndexChunked is the chunked-path counterpart of FirstRunIndex.
func FirstRunIndexChunked(ctx context.Context, s *chunk.BoolSeries, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := reducedForSeries[int](s)
	for i := range out.Data {
		out.Data[i] = IndexNotFound
	}
	err := reduceChunked(ctx, s, func(p, start, length int) {
		if length >= window && out.Data[p] == IndexNotFound {
			out.Data[p] = start
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// LastRunIndexChunked is the chunked-path counterpart of LastRunIndex.
func LastRunIndexChunked(ctx context.Context, s *chunk.BoolSeries, window int) (*field.Int, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	out := reducedForSeries[int](s)
	for i := range out.Data {
		out.Data[i] = IndexNotFound
	}
	err := reduceChunked(ctx, s, func(p, start, length int) {
		if length >= window {
			out.Data[p] = start
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// reducedForSeries allocates a space-only output array matching the series'
// non-time dims. A zero-length template array carries the layout so the
// reduction bookkeeping stays in one place (field.Reduced).
func reducedForSeries[U any](s *chunk.BoolSeries) *field.Array[U] {
	shape := s.Shape()
	dims := s.Dims()
	timeDim := s.TimeDimName()
	for i, d := range dims {
		if d == timeDim {
			shape[i] = 0
		}
	}

	tmpl, _ := field.New([]bool{}, dims, shape, timeDim)

	return field.Reduced[U](tmpl)
}
