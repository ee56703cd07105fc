// Package indices implements standard climate indices as thin compositions
// of the condition, runlen, spell, resample and calendar packages.
//
// Every function takes inputs already converted to the threshold's unit
// (degrees for temperature thresholds, mm/day for precipitation): unit
// declaration and conversion belong to the indicator layer above this
// engine. Temperature indices follow the ECA&D definitions; resampled
// outputs carry one value per period with NaN for empty periods.
package indices
