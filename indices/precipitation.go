package indices

import (
	"github.com/arloliu/climrun/calendar"
	"github.com/arloliu/climrun/condition"
	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/resample"
	"github.com/arloliu/climrun/runlen"
)

// MaximumConsecutiveDryDays returns the length of the longest run of days
// per period with pr below thresh (the wet-day threshold, conventionally
// 1 mm/day).
func MaximumConsecutiveDryDays(pr *field.Float64, thresh float64, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	dry := condition.Compare(pr, condition.Lt, thresh)

	return resample.AndRunLength(dry, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.LongestRun(b, 1)
	})
}

// MaximumConsecutiveWetDays returns the length of the longest run of days
// per period with pr at or above thresh.
func MaximumConsecutiveWetDays(pr *field.Float64, thresh float64, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	wet := condition.Compare(pr, condition.Ge, thresh)

	return resample.AndRunLength(wet, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.LongestRun(b, 1)
	})
}

// DrySpellFrequency returns the number of distinct dry spells per period:
// runs of at least window consecutive days with pr below thresh.
func DrySpellFrequency(pr *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	dry := condition.Compare(pr, condition.Lt, thresh)

	return resample.AndRunLength(dry, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.CountRuns(b, window)
	})
}

// DrySpellTotalLength returns the number of days per period belonging to
// dry spells of at least window days.
func DrySpellTotalLength(pr *field.Float64, thresh float64, window int, axis calendar.TimeAxis, freq string) (*field.Float64, error) {
	dry := condition.Compare(pr, condition.Lt, thresh)

	return resample.AndRunLength(dry, axis, freq, func(b *field.Bool) (*field.Int, error) {
		return runlen.TotalInRuns(b, window)
	})
}
