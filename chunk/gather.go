package chunk

import (
	"math"

	"github.com/arloliu/climrun/field"
)

// Gather fetches, for each space point, the value of src at the time index
// named by idx. Sentinel (negative) indices yield NaN. Blocks of src that
// contain no requested index are never realized, so a store-backed series
// stays spilled except where first/last-run lookups actually land.
//
// idx must hold one entry per space point of src (the shape of a
// time-reduced statistic over src).
//
// Parameters:
//   - idx: One time index per space point; negative means not found
//   - src: The chunked value series to read from
//
// Returns:
//   - *field.Float64: Per-space-point values, NaN for sentinel indices
//   - error: Shape mismatch, or a store failure while realizing a block
func Gather(idx *field.Int, src *Float64Series) (*field.Float64, error) {
	if idx.SpaceSize() != src.SpaceSize() {
		return nil, &field.ShapeMismatchError{
			Op:   "chunk.Gather: idx",
			Want: []int{src.SpaceSize()},
			Got:  []int{idx.SpaceSize()},
		}
	}

	out := field.Like[float64](idx)
	for i := range out.Data {
		out.Data[i] = math.NaN()
	}

	timeLen := src.TimeLen()
	space := src.SpaceSize()

	for c := 0; c < src.NumChunks(); c++ {
		b := src.Bounds(c)

		touched := false
		for p := 0; p < space; p++ {
			if t := idx.Data[p]; t >= 0 && b.Contains(t) {
				touched = true
				break
			}
		}
		if !touched {
			continue
		}

		blk, err := src.Chunk(c)
		if err != nil {
			return nil, err
		}
		for p := 0; p < space; p++ {
			t := idx.Data[p]
			if t < 0 || !b.Contains(t) {
				continue
			}
			if t >= timeLen {
				continue
			}
			out.Data[p] = blk.At(p, t-b.Lo)
		}
		src.Release(c)
	}

	return out, nil
}

// GatherField is the eager counterpart of Gather for a fully materialized
// source array.
func GatherField(idx *field.Int, src *field.Float64) (*field.Float64, error) {
	if idx.SpaceSize() != src.SpaceSize() {
		return nil, &field.ShapeMismatchError{
			Op:   "chunk.GatherField: idx",
			Want: []int{src.SpaceSize()},
			Got:  []int{idx.SpaceSize()},
		}
	}

	out := field.Like[float64](idx)
	timeLen := src.TimeLen()
	for p := 0; p < src.SpaceSize(); p++ {
		t := idx.Data[p]
		if t < 0 || t >= timeLen {
			out.Data[p] = math.NaN()
			continue
		}
		out.Data[p] = src.At(p, t)
	}

	return out, nil
}
