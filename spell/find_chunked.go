package spell

import (
	"context"
	"fmt"

	"github.com/arloliu/climrun/chunk"
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/internal/options"
)

// FindChunked is the chunked-path counterpart of Find. The start and stop
// series (and optional weight series) must agree in dims, shape and block
// bounds. Blocks are realized one triple at a time and released as soon as
// they are scanned; the only state carried across block boundaries is the
// per-space-point automaton, so an event spanning any number of block
// boundaries is detected exactly as in the eager path.
//
// weights may be nil; WithWeights is rejected here since a materialized
// weight array would defeat the chunked evaluation.
func FindChunked(ctx context.Context, start, stop *chunk.BoolSeries, weights *chunk.Float64Series, opts ...Option) (*Events, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.weights != nil {
		return nil, fmt.Errorf("spell.FindChunked: use the weights series argument, not WithWeights")
	}
	if err := checkSeriesAligned("spell.FindChunked: stop", start, stop); err != nil {
		return nil, err
	}
	if weights != nil {
		if err := checkSeriesAligned("spell.FindChunked: weights", start, weights); err != nil {
			return nil, err
		}
	}

	events := newEventsForSeries(start)
	space := start.SpaceSize()
	states := make([]automaton, space)

	for k := 0; k < start.NumChunks(); k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sBlk, err := start.Chunk(k)
		if err != nil {
			return nil, err
		}
		pBlk, err := stop.Chunk(k)
		if err != nil {
			return nil, err
		}
		var wBlk *field.Float64
		if weights != nil {
			if wBlk, err = weights.Chunk(k); err != nil {
				return nil, err
			}
		}

		b := start.Bounds(k)
		sStride := sBlk.TimeStride()
		pStride := pBlk.TimeStride()
		for p := 0; p < space; p++ {
			sBase := sBlk.Base(p)
			pBase := pBlk.Base(p)
			st := &states[p]
			for t := 0; t < b.Len(); t++ {
				w := 1.0
				if wBlk != nil {
					w = wBlk.At(p, t)
				}
				st.step(
					events, p, b.Lo+t,
					sBlk.Data[sBase+t*sStride],
					pBlk.Data[pBase+t*pStride],
					w,
					cfg.includeStop,
				)
			}
		}

		start.Release(k)
		stop.Release(k)
		if weights != nil {
			weights.Release(k)
		}
	}

	timeLen := start.TimeLen()
	for p := range states {
		states[p].finish(events, p, timeLen)
	}

	return events, nil
}

// newEventsForSeries builds the padded result for a chunked input using a
// zero-length layout stub.
func newEventsForSeries(s *chunk.BoolSeries) *Events {
	shape := s.Shape()
	dims := s.Dims()
	timeDim := s.TimeDimName()
	for i, d := range dims {
		if d == timeDim {
			shape[i] = 0
		}
	}
	tmpl, _ := field.New([]bool{}, dims, shape, timeDim)

	return newEvents(tmpl, s.TimeLen())
}

// checkSeriesAligned verifies that two series share dims, shape and block
// bounds.
func checkSeriesAligned[T any](op string, a *chunk.BoolSeries, b *chunk.Series[T]) error {
	aShape, bShape := a.Shape(), b.Shape()
	aDims, bDims := a.Dims(), b.Dims()
	if len(aShape) != len(bShape) {
		return &field.ShapeMismatchError{Op: op, Want: aShape, Got: bShape}
	}
	for i := range aShape {
		if aShape[i] != bShape[i] || aDims[i] != bDims[i] {
			return &field.ShapeMismatchError{Op: op, Want: aShape, Got: bShape}
		}
	}
	if a.NumChunks() != b.NumChunks() {
		return fmt.Errorf("%s: %d blocks, want %d", op, b.NumChunks(), a.NumChunks())
	}
	for k := 0; k < a.NumChunks(); k++ {
		if a.Bounds(k) != b.Bounds(k) {
			return fmt.Errorf("%s: block %d bounds %v, want %v", op, k, b.Bounds(k), a.Bounds(k))
		}
	}

	return nil
}
