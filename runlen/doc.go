// Package runlen is the run-length engine: it turns boolean condition
// arrays into run-length counters and derives every windowed run statistic
// the climate indices need from them.
//
// The central representation is the run-length-so-far counter: for each time
// position, the count of consecutive True values ending at (and including)
// that position, or 0 at a False. A run's end is a position whose counter is
// positive and about to reset (or the last position), and its value there is
// the run's length, so every statistic derives from the counters without
// re-scanning the input.
//
// Two interchangeable encoders produce the counters. Encode is the direct
// linear pass for fully materialized arrays. EncodeChunked operates on a
// chunked series, spilling counter blocks into a store-backed input's store
// so only the blocks in flight are resident: each block
// computes a local cumulative-sum-with-reset in parallel, a sequential scan
// over only the block boundaries computes the carry each block inherits (the
// one truly ordered step, O(number of blocks)), and a second parallel pass
// folds each carry into its block's leading True prefix. The two encoders
// produce bit-identical counters for every possible block split; the tests
// enforce this at every split point.
//
// Statistics take a minimum qualifying run length ("window"). A run shorter
// than the window contributes nothing, never partial credit. Position
// statistics return the sentinel -1 when no qualifying run exists; length
// and count statistics return 0, which is a legitimate value for fully valid
// data (distinguishing "no spell" from "not enough data" is the caller's
// missing-value policy, not this package's).
package runlen
