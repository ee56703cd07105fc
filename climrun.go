// Package climrun computes run-length and spell statistics for climate
// indices over labeled, optionally chunked arrays.
//
// The engine answers questions of the form "how long, how many, and when"
// about contiguous runs of a boolean condition along time: longest spell,
// number of spells of at least N days, total days in such spells, the
// position or date of the first and last spell, and two-predicate events
// with independent start and stop conditions. It handles non-standard
// climate calendars (360-day, noleap, all-leap) and evaluates out-of-core
// over a chunked time axis with results bit-identical to the in-memory
// path.
//
// # Basic Usage
//
// Computing the longest July-above-25-degrees spell per year:
//
//	import "github.com/arloliu/climrun"
//
//	axis, _ := calendar.NewTimeAxis(calendar.Date{Year: 2000, Month: 1, Day: 1}, calendar.NoLeap, tas.TimeLen())
//	hot := condition.Compare(tas, condition.Gt, 25.0)
//	perYear, _ := climrun.ResampleLongestRun(hot, axis, "YS", 3)
//
// Chunked evaluation over a spilled series:
//
//	store, _ := chunk.NewStore(chunk.WithCodec(compress.Zstd))
//	series, _ := chunk.Split(hot, 365)
//	_ = series.SpillTo(store, "tasmax>25")
//	longest, _ := climrun.LongestRunChunked(ctx, series, 3)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the condition,
// runlen, spell, resample and calendar packages, covering the most common
// compositions. For fine-grained control (distributions, custom spell
// aggregates, gather-based date lookups), use those packages directly.
package climrun

import (
	"context"
	"math"

	"github.com/arloliu/climrun/calendar"
	"github.com/arloliu/climrun/chunk"
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/resample"
	"github.com/arloliu/climrun/runlen"
	"github.com/arloliu/climrun/spell"
)

// LongestRun returns the longest run of True values of at least window
// steps per space point, over the whole series.
func LongestRun(b *field.Bool, window int) (*field.Int, error) {
	return runlen.LongestRun(b, window)
}

// LongestRunChunked is LongestRun over a chunked series.
func LongestRunChunked(ctx context.Context, s *chunk.BoolSeries, window int) (*field.Int, error) {
	return runlen.LongestRunChunked(ctx, s, window)
}

// CountRuns returns the number of runs of at least window steps per space
// point, over the whole series.
func CountRuns(b *field.Bool, window int) (*field.Int, error) {
	return runlen.CountRuns(b, window)
}

// TotalInRuns returns the total True steps in runs of at least window steps
// per space point, over the whole series.
func TotalInRuns(b *field.Bool, window int) (*field.Int, error) {
	return runlen.TotalInRuns(b, window)
}

// FirstRunDate returns the date of the first run of at least window steps
// per space point as NaN-padded axis positions translated through axis.
func FirstRunDate(b *field.Bool, axis calendar.TimeAxis, window int) (*field.Float64, []calendar.Date, error) {
	idx, err := runlen.FirstRunIndex(b, window)
	if err != nil {
		return nil, nil, err
	}

	positions := field.Like[float64](idx)
	dates := make([]calendar.Date, len(idx.Data))
	for i, v := range idx.Data {
		if v == runlen.IndexNotFound {
			positions.Data[i] = math.NaN()
			continue
		}
		positions.Data[i] = float64(v)
		dates[i] = axis.DateForIndex(v)
	}

	return positions, dates, nil
}

// ResampleLongestRun computes the longest qualifying run independently per
// period of freq on axis.
func ResampleLongestRun(b *field.Bool, axis calendar.TimeAxis, freq string, window int) (*field.Float64, error) {
	return resample.AndRunLength(b, axis, freq, func(sub *field.Bool) (*field.Int, error) {
		return runlen.LongestRun(sub, window)
	})
}

// ResampleCountRuns computes the number of qualifying runs independently
// per period of freq on axis.
func ResampleCountRuns(b *field.Bool, axis calendar.TimeAxis, freq string, window int) (*field.Float64, error) {
	return resample.AndRunLength(b, axis, freq, func(sub *field.Bool) (*field.Int, error) {
		return runlen.CountRuns(sub, window)
	})
}

// ResampleTotalInRuns computes the total qualifying run days independently
// per period of freq on axis.
func ResampleTotalInRuns(b *field.Bool, axis calendar.TimeAxis, freq string, window int) (*field.Float64, error) {
	return resample.AndRunLength(b, axis, freq, func(sub *field.Bool) (*field.Int, error) {
		return runlen.TotalInRuns(sub, window)
	})
}

// FindSpells detects two-predicate events over the whole series. See the
// spell package for options and chunked evaluation.
func FindSpells(start, stop *field.Bool, opts ...spell.Option) (*spell.Events, error) {
	return spell.Find(start, stop, opts...)
}
