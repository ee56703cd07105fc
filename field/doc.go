// Package field provides the labeled N-dimensional array model shared by
// every statistic in climrun.
//
// An Array carries named dimensions, a row-major backing slice, and exactly
// one dimension designated as the time axis. All statistics treat the
// remaining "space" dimensions as independent and identical: a computation
// over a (time, lat, lon) array is the same scan applied once per (lat, lon)
// point. The package exposes the strided accessors (Base, TimeStride, At)
// that make this per-space-point scan cheap without reshaping or copying.
//
// Arrays are plain values with no embedded physical metadata: unit
// conversion, CF attributes and missing-value policies belong to the layers
// above and below this engine.
package field
