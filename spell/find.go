package spell

import (
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/internal/options"
	"github.com/arloliu/climrun/internal/pool"
)

// Find scans the start and stop predicates along time and returns every
// detected event. The predicate arrays (and the optional weight array) must
// share dims and shape exactly; nothing is broadcast.
//
// Parameters:
//   - start: Event-opening predicate per time step
//   - stop: Event-closing predicate per time step
//   - opts: WithWeights, WithIncludeStop
//
// Returns:
//   - *Events: Padded per-space-point event starts, ends, aggregates and counts
//   - error: Shape mismatch between start, stop and weights
func Find(start, stop *field.Bool, opts ...Option) (*Events, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := field.CheckSameShape("spell.Find: stop", start, stop); err != nil {
		return nil, err
	}
	if cfg.weights != nil {
		if err := field.CheckSameShape("spell.Find: weights", start, cfg.weights); err != nil {
			return nil, err
		}
	}

	events := newEvents(start, start.TimeLen())
	timeLen := start.TimeLen()

	sRow, sDone := pool.GetBoolSlice(timeLen)
	defer sDone()
	pRow, pDone := pool.GetBoolSlice(timeLen)
	defer pDone()
	var wRow []float64
	if cfg.weights != nil {
		var wDone func()
		wRow, wDone = pool.GetFloat64Slice(timeLen)
		defer wDone()
	}

	for p := 0; p < start.SpaceSize(); p++ {
		start.CopyRow(p, sRow)
		stop.CopyRow(p, pRow)
		if wRow != nil {
			cfg.weights.CopyRow(p, wRow)
		}

		var st automaton
		for t := 0; t < timeLen; t++ {
			w := 1.0
			if wRow != nil {
				w = wRow[t]
			}
			st.step(events, p, t, sRow[t], pRow[t], w, cfg.includeStop)
		}
		st.finish(events, p, timeLen)
	}

	return events, nil
}

// automaton is the per-space-point OUTSIDE/INSIDE state machine. It is
// shared verbatim by the eager and chunked paths, which is what keeps the
// two paths identical by construction: the chunked scan only feeds it the
// same (start, stop, weight) triples block by block.
type automaton struct {
	inside  bool
	evStart int
	agg     float64
}

// step advances the automaton by one time index, emitting a closed event
// into events when the stop predicate fires.
func (a *automaton) step(events *Events, p, t int, startsNow, stopsNow bool, weight float64, includeStop bool) {
	if !a.inside && startsNow {
		a.inside = true
		a.evStart = t
		a.agg = 0
	}
	if !a.inside {
		return
	}

	if !stopsNow {
		a.agg += weight
		return
	}

	// Stop fires. The stop step is excluded from the span unless configured
	// inclusive; an event opened on this very step still spans it, so the
	// minimum event length is 1.
	openedNow := a.evStart == t
	if includeStop || openedNow {
		a.agg += weight
		events.emit(p, a.evStart, t, a.agg)
	} else {
		events.emit(p, a.evStart, t-1, a.agg)
	}
	a.inside = false
}

// finish closes an event still open at the end of the sequence at the last
// index.
func (a *automaton) finish(events *Events, p, timeLen int) {
	if a.inside {
		events.emit(p, a.evStart, timeLen-1, a.agg)
		a.inside = false
	}
}
