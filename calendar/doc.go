// Package calendar provides the date arithmetic the run-length engine
// delegates: mapping time indices to dates and back, cutting a time axis
// into resampling periods, and day-of-year window predicates.
//
// Climate model output routinely uses calendars where Go's time package
// cannot help: years of twelve 30-day months (Day360), years that never
// (NoLeap) or always (AllLeap) contain February 29, alongside the standard
// proleptic Gregorian calendar. All arithmetic here is integer day-ordinal
// based and exact; DateForIndex and IndexForDate round-trip for every date
// in range under every calendar.
//
// A TimeAxis is a daily-resolution coordinate: a start date, a calendar and
// a length. PeriodBoundaries cuts it into non-overlapping, ordered [start,
// end) index ranges for a frequency string ("YS", "MS", "QS-DEC", "YS-JUL",
// "W", "D"). Unknown frequencies fail immediately with
// ErrUnsupportedFrequency so misconfiguration surfaces before any chunk
// work is scheduled.
package calendar
