package chunk

import (
	"fmt"

	"github.com/arloliu/climrun/field"
	"github.com/arloliu/climrun/internal/pool"
)

// Bounds is the [Lo, Hi) time range a block covers on the full axis.
type Bounds struct {
	Lo int
	Hi int
}

// Len returns the number of time steps the block covers.
func (b Bounds) Len() int {
	return b.Hi - b.Lo
}

// Contains reports whether time index t falls inside the block.
func (b Bounds) Contains(t int) bool {
	return t >= b.Lo && t < b.Hi
}

// Series is a labeled array split into contiguous blocks along its time
// axis. Blocks are resident field arrays until SpillTo moves them into a
// Store, after which Chunk realizes them on demand and Release drops the
// resident copy again.
//
// Series methods are not safe for concurrent mutation of the same block
// (SpillTo, SetChunk, Release); concurrent Chunk or Spill calls on distinct
// blocks of a bound series are safe because the store is, at the cost of
// redundant realization.
type Series[T any] struct {
	dims    []string
	shape   []int // full shape, time at timeAxis
	timeDim string

	bounds []Bounds
	blocks []*field.Array[T] // nil entries are spilled

	store *Store
	id    string
}

// Typed aliases used throughout the module.
type (
	BoolSeries    = Series[bool]
	Int32Series   = Series[int32]
	Float64Series = Series[float64]
)

// Split divides a along its time axis into blocks.
//
// With a single size, blocks are uniform (the final block may be shorter).
// With multiple sizes, they are used verbatim and must sum to the time
// length. A zero-length time axis yields a series with no blocks.
//
// Parameters:
//   - a: Source array, split along its time dimension
//   - sizes: One uniform block size, or the explicit size of every block
//
// Returns:
//   - *Series[T]: The chunked series, blocks resident
//   - error: When sizes is empty, non-positive, or does not cover the axis
func Split[T any](a *field.Array[T], sizes ...int) (*Series[T], error) {
	timeLen := a.TimeLen()

	var cuts []int
	switch {
	case len(sizes) == 0:
		return nil, fmt.Errorf("chunk.Split: no chunk sizes given")
	case len(sizes) == 1:
		if sizes[0] < 1 {
			return nil, fmt.Errorf("chunk.Split: chunk size %d < 1", sizes[0])
		}
		for lo := 0; lo < timeLen; lo += sizes[0] {
			hi := min(lo+sizes[0], timeLen)
			cuts = append(cuts, hi)
		}
	default:
		total := 0
		for _, s := range sizes {
			if s < 1 {
				return nil, fmt.Errorf("chunk.Split: chunk size %d < 1", s)
			}
			total += s
			cuts = append(cuts, total)
		}
		if total != timeLen {
			return nil, fmt.Errorf("chunk.Split: chunk sizes sum to %d, time length is %d", total, timeLen)
		}
	}

	s := &Series[T]{
		dims:    a.Dims(),
		shape:   a.Shape(),
		timeDim: a.TimeDimName(),
	}

	lo := 0
	for _, hi := range cuts {
		s.bounds = append(s.bounds, Bounds{Lo: lo, Hi: hi})
		s.blocks = append(s.blocks, a.SliceTime(lo, hi))
		lo = hi
	}

	return s, nil
}

// NewLike creates a series of element type U with the same dims, bounds and
// time axis as s, with no blocks yet. Chunked encoders use it for their
// outputs, allocating one block at a time with AllocChunk so an output bound
// to a store never has more than the in-flight blocks resident.
func NewLike[U, T any](s *Series[T]) *Series[U] {
	return &Series[U]{
		dims:    append([]string(nil), s.dims...),
		shape:   append([]int(nil), s.shape...),
		timeDim: s.timeDim,
		bounds:  append([]Bounds(nil), s.bounds...),
		blocks:  make([]*field.Array[U], len(s.blocks)),
	}
}

// AllocChunk installs a zero-valued resident block covering bounds i,
// replacing any prior resident copy, and returns it. Allocating distinct
// blocks from different goroutines is safe.
func (s *Series[T]) AllocChunk(i int) *field.Array[T] {
	blk := s.allocBlock(s.bounds[i])
	s.blocks[i] = blk

	return blk
}

// allocBlock allocates a zero-valued resident block covering b.
func (s *Series[T]) allocBlock(b Bounds) *field.Array[T] {
	shape := append([]int(nil), s.shape...)
	for i, d := range s.dims {
		if d == s.timeDim {
			shape[i] = b.Len()
		}
	}
	size := 1
	for _, e := range shape {
		size *= e
	}
	blk, _ := field.New(make([]T, size), s.dims, shape, s.timeDim)

	return blk
}

// NumChunks returns the number of blocks.
func (s *Series[T]) NumChunks() int {
	return len(s.bounds)
}

// Bounds returns the time range of block i.
func (s *Series[T]) Bounds(i int) Bounds {
	return s.bounds[i]
}

// TimeLen returns the full time-axis length.
func (s *Series[T]) TimeLen() int {
	for i, d := range s.dims {
		if d == s.timeDim {
			return s.shape[i]
		}
	}

	return 0
}

// TimeDimName returns the name of the time dimension.
func (s *Series[T]) TimeDimName() string {
	return s.timeDim
}

// Dims returns a copy of the dimension names.
func (s *Series[T]) Dims() []string {
	return append([]string(nil), s.dims...)
}

// Shape returns a copy of the full (unchunked) dimension extents.
func (s *Series[T]) Shape() []int {
	return append([]int(nil), s.shape...)
}

// SpaceSize returns the product of the non-time extents.
func (s *Series[T]) SpaceSize() int {
	size := 1
	for i, d := range s.dims {
		if d != s.timeDim {
			size *= s.shape[i]
		}
	}

	return size
}

// Backed reports whether the series has a spill store attached.
func (s *Series[T]) Backed() bool {
	return s.store != nil
}

// Bind attaches a store under the given series ID without moving any
// blocks. Subsequent Spill calls move individual blocks into it; chunked
// computations bind their output series up front so each block can be
// spilled the moment it is final.
//
// Parameters:
//   - store: the store spilled blocks go to
//   - id: caller-chosen series ID, unique within the store
func (s *Series[T]) Bind(store *Store, id string) {
	s.store = store
	s.id = id
}

// Spill packs, compresses and moves block i into the bound store, dropping
// the resident copy. Spilling a block that is already spilled is a no-op.
// Spilling distinct blocks from different goroutines is safe.
//
// Returns:
//   - error: when no store is bound, or packing/compression fails
func (s *Series[T]) Spill(i int) error {
	if s.store == nil {
		return fmt.Errorf("chunk: spilling block %d of series %q: no store bound", i, s.id)
	}
	if s.blocks[i] == nil {
		return nil
	}

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	if err := marshalSlice(buf, s.blocks[i].Data); err != nil {
		return err
	}
	if err := s.store.put(blockKey(s.id, i), buf.Bytes()); err != nil {
		return err
	}
	s.blocks[i] = nil

	return nil
}

// SpillTo binds store under the given series ID and moves every resident
// block into it. Subsequent Chunk calls realize blocks from the store.
//
// Parameters:
//   - store: the store blocks move to
//   - id: caller-chosen series ID, unique within the store
//
// Returns:
//   - error: when packing or compression of any block fails
func (s *Series[T]) SpillTo(store *Store, id string) error {
	s.Bind(store, id)
	for i := range s.blocks {
		if err := s.Spill(i); err != nil {
			return err
		}
	}

	return nil
}

// ID returns the series ID blocks are keyed under, or "" when no store is
// bound.
func (s *Series[T]) ID() string {
	return s.id
}

// Store returns the bound store, or nil.
func (s *Series[T]) Store() *Store {
	return s.store
}

// Resident reports whether block i currently has an in-memory copy.
func (s *Series[T]) Resident(i int) bool {
	return s.blocks[i] != nil
}

// Chunk returns block i, realizing it from the store when spilled. The
// returned array stays resident until Release is called for it.
func (s *Series[T]) Chunk(i int) (*field.Array[T], error) {
	if s.blocks[i] != nil {
		return s.blocks[i], nil
	}
	if s.store == nil {
		return nil, fmt.Errorf("chunk: block %d of series %q: %w", i, s.id, ErrChunkMissing)
	}

	packed, err := s.store.get(blockKey(s.id, i))
	if err != nil {
		return nil, fmt.Errorf("chunk: block %d of series %q: %w", i, s.id, err)
	}

	blk := s.allocBlock(s.bounds[i])
	data, err := unmarshalSlice[T](packed, len(blk.Data))
	if err != nil {
		return nil, err
	}
	blk.Data = data
	s.blocks[i] = blk

	return blk, nil
}

// Release drops the resident copy of block i. It is a no-op for a series
// without a store, whose blocks are the only copy.
func (s *Series[T]) Release(i int) {
	if s.store != nil {
		s.blocks[i] = nil
	}
}

// SetChunk replaces block i. The block's time length must match the bounds.
func (s *Series[T]) SetChunk(i int, blk *field.Array[T]) error {
	if blk.TimeLen() != s.bounds[i].Len() {
		return &field.ShapeMismatchError{
			Op:   "chunk.SetChunk",
			Want: []int{s.bounds[i].Len()},
			Got:  []int{blk.TimeLen()},
		}
	}
	s.blocks[i] = blk

	return nil
}

// Drop removes the series' spilled blocks from the store and detaches it.
// Blocks still resident stay usable; spilled ones are gone.
func (s *Series[T]) Drop() {
	if s.store == nil {
		return
	}
	for i := range s.blocks {
		s.store.delete(blockKey(s.id, i))
	}
	s.store = nil
	s.id = ""
}

// Materialize concatenates all blocks into a single contiguous array.
func (s *Series[T]) Materialize() (*field.Array[T], error) {
	out, err := field.New(make([]T, s.fullSize()), s.dims, s.shape, s.timeDim)
	if err != nil {
		return nil, err
	}

	space := s.SpaceSize()
	for i := range s.bounds {
		blk, err := s.Chunk(i)
		if err != nil {
			return nil, err
		}
		lo := s.bounds[i].Lo
		n := s.bounds[i].Len()
		for p := 0; p < space; p++ {
			srcBase := blk.Base(p)
			dstBase := out.Base(p)
			for t := 0; t < n; t++ {
				out.Data[dstBase+(lo+t)*out.TimeStride()] = blk.Data[srcBase+t*blk.TimeStride()]
			}
		}
		s.Release(i)
	}

	return out, nil
}

// fullSize returns the flat element count of the whole series.
func (s *Series[T]) fullSize() int {
	size := 1
	for _, e := range s.shape {
		size *= e
	}

	return size
}
