// Package chunk models a time axis split into contiguous, independently
// processable blocks, which is how the run-length engine stays out-of-core:
// a statistic over a store-backed series realizes blocks as it needs them
// and spills or releases them when done, so only the blocks in flight are
// resident rather than the whole time axis.
//
// A Series is an ordered list of blocks of a labeled array along its time
// dimension. Blocks may live in memory, or be spilled into a Store that
// keeps them bitpacked and compressed until a computation realizes them.
// The split is an implementation detail with one hard invariant: every
// statistic must produce results identical to the unchunked case, including
// for runs of True values that span a block boundary. The cross-boundary
// carry logic that guarantees this lives in the runlen and spell packages;
// this package only guarantees faithful block storage and retrieval.
//
// Gather is the chunk-aware positional indexer: given one time index per
// space point it fetches the addressed values while realizing only the
// blocks that contain at least one requested index.
package chunk
