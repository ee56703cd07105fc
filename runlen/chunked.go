package runlen

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/climrun/chunk"
)

// EncodeChunked computes run-length-so-far counters over a chunked series,
// bit-identical to Encode on the materialized input. When the input is
// store-backed, the counter blocks spill into the same store as each one is
// finished, keyed under the input's series ID with a "/counters" suffix, so
// peak residency stays at the blocks in flight rather than the full time
// axis. An unbacked input already has its whole axis resident and yields a
// fully resident output.
//
// The computation has three phases:
//
//  1. Local (parallel over blocks): each block computes a cumulative sum of
//     its booleans and subtracts the cumulative sum at the last False seen,
//     i.e. a cumulative-sum-with-reset. Per space point the block also
//     records its leading True-prefix length and its final counter.
//  2. Carry (sequential, O(blocks x space)): a scan over only the block
//     boundaries derives the counter each block inherits from its
//     predecessor. A block whose True prefix spans its whole extent passes
//     its inherited carry through, extended by its own length; any False
//     inside the block severs the carry chain.
//  3. Correction (parallel over blocks): each block adds its carry to the
//     counters of its leading True prefix.
//
// Phase 2 is the only place the time-order dependency between blocks
// survives, which is what keeps the rest schedulable in any order.
//
// Parameters:
//   - ctx: Cancels in-flight block work
//   - s: Chunked boolean condition series
//
// Returns:
//   - *chunk.Int32Series: Counter series with s's bounds, spilled to s's
//     store when s is backed
//   - error: Context cancellation or a store failure
func EncodeChunked(ctx context.Context, s *chunk.BoolSeries) (*chunk.Int32Series, error) {
	out := chunk.NewLike[int32](s)
	backed := s.Backed()
	if backed {
		out.Bind(s.Store(), s.ID()+"/counters")
	}
	n := s.NumChunks()
	if n == 0 {
		return out, nil
	}

	space := s.SpaceSize()
	prefixes := make([][]int32, n)
	trailing := make([][]int32, n)

	// Phase 1: local cumulative-sum-with-reset per block.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k := 0; k < n; k++ {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			blk, err := s.Chunk(k)
			if err != nil {
				return err
			}
			oblk := out.AllocChunk(k)

			blockLen := s.Bounds(k).Len()
			prefixes[k] = make([]int32, space)
			trailing[k] = make([]int32, space)

			bStride := blk.TimeStride()
			oStride := oblk.TimeStride()
			for p := 0; p < space; p++ {
				base := blk.Base(p)
				oBase := oblk.Base(p)

				var cum, baseline int32
				prefixOpen := true
				for t := 0; t < blockLen; t++ {
					if blk.Data[base+t*bStride] {
						cum++
					} else {
						baseline = cum
						prefixOpen = false
					}
					oblk.Data[oBase+t*oStride] = cum - baseline
					if prefixOpen {
						prefixes[k][p] = int32(t + 1)
					}
				}
				if blockLen > 0 {
					trailing[k][p] = cum - baseline
				}
			}

			s.Release(k)
			if backed {
				return out.Spill(k)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 2: sequential carry scan over block boundaries.
	carries := make([][]int32, n)
	carry := make([]int32, space)
	for k := 0; k < n; k++ {
		carries[k] = append([]int32(nil), carry...)

		blockLen := int32(s.Bounds(k).Len())
		for p := 0; p < space; p++ {
			if prefixes[k][p] == blockLen {
				// Block is all-True at p: the carry chain survives.
				carry[p] += blockLen
			} else {
				carry[p] = trailing[k][p]
			}
		}
	}

	// Phase 3: fold carries into each block's leading True prefix.
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k := 0; k < n; k++ {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			needFix := false
			for p := 0; p < space; p++ {
				if carries[k][p] != 0 && prefixes[k][p] > 0 {
					needFix = true
					break
				}
			}
			if !needFix {
				return nil
			}

			oblk, err := out.Chunk(k)
			if err != nil {
				return err
			}

			oStride := oblk.TimeStride()
			for p := 0; p < space; p++ {
				c := carries[k][p]
				if c == 0 {
					continue
				}
				oBase := oblk.Base(p)
				for t := int32(0); t < prefixes[k][p]; t++ {
					oblk.Data[oBase+int(t)*oStride] += c
				}
			}
			if backed {
				return out.Spill(k)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// visitRunsChunked streams the counter series in time order and reports
// every completed run as (space point, start, length). Blocks are realized
// one at a time and released as soon as they are consumed; per-space state
// between blocks is a single pending counter.
func visitRunsChunked(cs *chunk.Int32Series, visit func(p, start, length int)) error {
	space := cs.SpaceSize()
	pending := make([]int32, space)

	for k := 0; k < cs.NumChunks(); k++ {
		blk, err := cs.Chunk(k)
		if err != nil {
			return err
		}

		b := cs.Bounds(k)
		stride := blk.TimeStride()
		for p := 0; p < space; p++ {
			base := blk.Base(p)
			prev := pending[p]
			for t := 0; t < b.Len(); t++ {
				c := blk.Data[base+t*stride]
				if c == 0 && prev > 0 {
					end := b.Lo + t - 1
					visit(p, end-int(prev)+1, int(prev))
				}
				prev = c
			}
			pending[p] = prev
		}

		cs.Release(k)
	}

	timeLen := cs.TimeLen()
	for p := 0; p < space; p++ {
		if prev := pending[p]; prev > 0 {
			visit(p, timeLen-int(prev), int(prev))
		}
	}

	return nil
}
