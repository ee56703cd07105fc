// Package spell detects events defined by two independent boolean
// predicates: a start condition that opens an event and a stop condition
// that closes it, regardless of what the start condition does in between.
// This generalizes plain run detection to multi-day threshold events such as
// heat waves that persist through a single cool day, or rain seasons that
// end only on a distinct dryness criterion.
//
// Per space point the scan is a two-state automaton, OUTSIDE and INSIDE.
// The start predicate firing while OUTSIDE opens an event; the stop
// predicate firing while INSIDE closes it. By default the stop step is
// excluded from the event span; WithIncludeStop makes it inclusive. When
// start and stop fire on the same step while OUTSIDE, the event is recorded
// with length 1, never 0. An event still open at the end of the sequence is
// closed at the last index, since an ongoing spell at the edge of the
// observation window is still informative. After a close, the next event can
// open at the following step at the earliest.
//
// Each event carries its start index, end index and an aggregate: the sum of
// an optional weight array over the event span, or the plain length when no
// weights are given.
package spell
