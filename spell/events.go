package spell

import (
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/internal/options"
)

// EventsDim names the padded capacity dimension of an Events result.
const EventsDim = "events"

// NoEvent is the padding value in the Start and End arrays beyond each
// space point's event count.
const NoEvent = -1

// Events is the padded fixed-capacity result of a Find call. The number of
// events per space point is data-dependent, so slots are padded to the time
// length (the worst case: start and stop both firing every step yields one
// length-1 event per step) and Count marks the used slots. Slots at or
// beyond Count hold NoEvent / 0 and must be treated as absent.
type Events struct {
	// Start and End hold each event's first and last time index, with the
	// time dim replaced by EventsDim.
	Start *field.Int
	End   *field.Int

	// Agg holds each event's aggregate: the sum of the weight array over
	// the event span, or the event length when no weights were given.
	Agg *field.Float64

	// Count holds the number of events per space point.
	Count *field.Int

	capacity int
}

// Capacity returns the padded slot count of the EventsDim axis.
func (e *Events) Capacity() int {
	return e.capacity
}

// newEvents allocates a padded result with b as the layout template and the
// given slot capacity (the full time length; b itself may be a zero-length
// layout stub in the chunked path).
func newEvents(b *field.Bool, capacity int) *Events {
	e := &Events{
		Start:    field.AppendRunsDim[int](b, EventsDim, capacity),
		End:      field.AppendRunsDim[int](b, EventsDim, capacity),
		Agg:      field.AppendRunsDim[float64](b, EventsDim, capacity),
		Count:    field.Reduced[int](b),
		capacity: capacity,
	}
	for i := range e.Start.Data {
		e.Start.Data[i] = NoEvent
		e.End.Data[i] = NoEvent
	}

	return e
}

// emit records one closed event for space point p.
func (e *Events) emit(p, start, end int, agg float64) {
	slot := e.Count.Data[p]
	e.Start.SetAt(p, slot, start)
	e.End.SetAt(p, slot, end)
	e.Agg.SetAt(p, slot, agg)
	e.Count.Data[p] = slot + 1
}

// LongestEvent returns the longest event span per space point, 0 when no
// event occurred.
func (e *Events) LongestEvent() *field.Int {
	out := field.Reduced[int](e.Count)
	for p := 0; p < e.Count.SpaceSize(); p++ {
		longest := 0
		for i := 0; i < e.Count.Data[p]; i++ {
			if l := e.End.At(p, i) - e.Start.At(p, i) + 1; l > longest {
				longest = l
			}
		}
		out.Data[p] = longest
	}

	return out
}

// TotalAggregate returns the sum of event aggregates per space point, 0
// when no event occurred.
func (e *Events) TotalAggregate() *field.Float64 {
	out := field.Reduced[float64](e.Count)
	for p := 0; p < e.Count.SpaceSize(); p++ {
		var total float64
		for i := 0; i < e.Count.Data[p]; i++ {
			total += e.Agg.At(p, i)
		}
		out.Data[p] = total
	}

	return out
}

// config carries the Find options.
type config struct {
	weights     *field.Float64
	includeStop bool
}

// Option is a functional option for Find and FindChunked.
type Option = options.Option[*config]

// WithWeights sets the numeric array aggregated over each event span. Its
// shape must match the predicate arrays. Without weights, the aggregate is
// the event length.
func WithWeights(w *field.Float64) Option {
	return options.NoError(func(cfg *config) {
		cfg.weights = w
	})
}

// WithIncludeStop makes the step on which the stop predicate fires part of
// the event span. The default excludes it.
func WithIncludeStop(include bool) Option {
	return options.NoError(func(cfg *config) {
		cfg.includeStop = include
	})
}
