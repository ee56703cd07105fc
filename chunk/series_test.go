package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/climrun/compress"
	"github.com/arloliu/climrun/field"
)

func TestSplit_UniformSize(t *testing.T) {
	a := field.NewSeries([]float64{0, 1, 2, 3, 4, 5, 6})

	s, err := Split(a, 3)
	require.NoError(t, err)

	require.Equal(t, 3, s.NumChunks())
	require.Equal(t, Bounds{Lo: 0, Hi: 3}, s.Bounds(0))
	require.Equal(t, Bounds{Lo: 3, Hi: 6}, s.Bounds(1))
	require.Equal(t, Bounds{Lo: 6, Hi: 7}, s.Bounds(2))
	require.Equal(t, 7, s.TimeLen())
}

func TestSplit_ExplicitSizes(t *testing.T) {
	a := field.NewSeries([]float64{0, 1, 2, 3, 4, 5})

	s, err := Split(a, 1, 2, 3)
	require.NoError(t, err)

	require.Equal(t, 3, s.NumChunks())
	require.Equal(t, Bounds{Lo: 1, Hi: 3}, s.Bounds(1))

	blk, err := s.Chunk(2)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4, 5}, blk.Data)
}

func TestSplit_Validation(t *testing.T) {
	a := field.NewSeries([]float64{0, 1, 2})

	_, err := Split(a)
	require.Error(t, err)

	_, err = Split(a, 0)
	require.Error(t, err)

	_, err = Split(a, 2, 2)
	require.Error(t, err)

	_, err = Split(a, 1, -1, 3)
	require.Error(t, err)
}

func TestSplit_EmptyTimeAxis(t *testing.T) {
	a := field.NewSeries([]float64{})

	s, err := Split(a, 5)
	require.NoError(t, err)
	require.Equal(t, 0, s.NumChunks())

	full, err := s.Materialize()
	require.NoError(t, err)
	require.Empty(t, full.Data)
}

func TestSeries_MaterializeRoundTrip(t *testing.T) {
	data := []float64{
		0, 1, 2, 3, 4,
		5, 6, 7, 8, 9,
	}
	a, err := field.New(data, []string{"lat", "time"}, []int{2, 5}, "time")
	require.NoError(t, err)

	s, err := Split(a, 2)
	require.NoError(t, err)

	full, err := s.Materialize()
	require.NoError(t, err)
	require.Equal(t, a.Data, full.Data)
	require.Equal(t, a.Dims(), full.Dims())
	require.Equal(t, a.Shape(), full.Shape())
}

func TestSeries_SpillRoundTrip(t *testing.T) {
	for _, ctype := range []compress.Type{compress.None, compress.S2, compress.LZ4, compress.Zstd} {
		t.Run(ctype.String(), func(t *testing.T) {
			a := field.NewSeries([]float64{0.5, -1, 2, 3.25, 4, 5, 6, 7})
			s, err := Split(a, 3)
			require.NoError(t, err)

			store, err := NewStore(WithCodec(ctype))
			require.NoError(t, err)

			require.NoError(t, s.SpillTo(store, "tas"))
			require.True(t, s.Backed())
			require.Equal(t, 3, store.Len())
			for i := 0; i < s.NumChunks(); i++ {
				require.Nil(t, s.blocks[i], "block %d should be spilled", i)
			}

			full, err := s.Materialize()
			require.NoError(t, err)
			require.Equal(t, a.Data, full.Data)
		})
	}
}

func TestSeries_SpillBools(t *testing.T) {
	a := field.NewSeries([]bool{true, false, true, true, false, true, false, false, true})
	s, err := Split(a, 4)
	require.NoError(t, err)

	store, err := NewStore()
	require.NoError(t, err)
	require.NoError(t, s.SpillTo(store, "hot"))

	full, err := s.Materialize()
	require.NoError(t, err)
	require.Equal(t, a.Data, full.Data)
}

func TestSeries_ChunkRealizesAndReleaseDrops(t *testing.T) {
	a := field.NewSeries([]float64{1, 2, 3, 4})
	s, err := Split(a, 2)
	require.NoError(t, err)

	store, err := NewStore()
	require.NoError(t, err)
	require.NoError(t, s.SpillTo(store, "x"))

	blk, err := s.Chunk(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, blk.Data)
	require.NotNil(t, s.blocks[1])
	require.Nil(t, s.blocks[0])

	s.Release(1)
	require.Nil(t, s.blocks[1])

	// The store still has it.
	blk, err = s.Chunk(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, blk.Data)
}

func TestSeries_ReleaseWithoutStoreIsNoOp(t *testing.T) {
	a := field.NewSeries([]float64{1, 2})
	s, err := Split(a, 1)
	require.NoError(t, err)

	s.Release(0)

	blk, err := s.Chunk(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1}, blk.Data)
}

func TestSeries_Drop(t *testing.T) {
	a := field.NewSeries([]float64{1, 2, 3, 4})
	s, err := Split(a, 2)
	require.NoError(t, err)

	store, err := NewStore()
	require.NoError(t, err)
	require.NoError(t, s.SpillTo(store, "x"))
	require.Equal(t, 2, store.Len())

	s.Drop()

	require.False(t, s.Backed())
	require.Equal(t, 0, store.Len())
	require.Equal(t, int64(0), store.CompressedBytes())

	_, err = s.Chunk(0)
	require.ErrorIs(t, err, ErrChunkMissing)
}

func TestSeries_SetChunk(t *testing.T) {
	a := field.NewSeries([]int32{0, 0, 0, 0})
	s, err := Split(a, 2)
	require.NoError(t, err)

	blk := field.NewSeries([]int32{7, 8})
	require.NoError(t, s.SetChunk(0, blk))

	got, err := s.Chunk(0)
	require.NoError(t, err)
	require.Equal(t, []int32{7, 8}, got.Data)

	bad := field.NewSeries([]int32{1, 2, 3})
	require.Error(t, s.SetChunk(1, bad))
}

func TestNewLike_AllocChunkZeroedBlocks(t *testing.T) {
	a := field.NewSeries([]bool{true, true, false, true, true})
	s, err := Split(a, 2)
	require.NoError(t, err)

	out := NewLike[int32](s)

	require.Equal(t, s.NumChunks(), out.NumChunks())
	require.Equal(t, s.TimeLen(), out.TimeLen())
	for i := 0; i < out.NumChunks(); i++ {
		require.Equal(t, s.Bounds(i), out.Bounds(i))
		require.False(t, out.Resident(i))

		blk := out.AllocChunk(i)
		require.True(t, out.Resident(i))
		require.Len(t, blk.Data, s.Bounds(i).Len())
		for _, v := range blk.Data {
			require.Equal(t, int32(0), v)
		}
	}
}

func TestNewLike_UnallocatedChunkIsMissing(t *testing.T) {
	a := field.NewSeries([]bool{true, false})
	s, err := Split(a, 1)
	require.NoError(t, err)

	out := NewLike[int32](s)

	_, err = out.Chunk(0)
	require.ErrorIs(t, err, ErrChunkMissing)
}

func TestSeries_BindAndSpillPerBlock(t *testing.T) {
	a := field.NewSeries([]int32{1, 2, 3, 4, 5})
	s, err := Split(a, 2)
	require.NoError(t, err)

	store, err := NewStore(WithCodec(compress.None))
	require.NoError(t, err)

	s.Bind(store, "c")
	require.True(t, s.Backed())
	require.Equal(t, "c", s.ID())
	require.Same(t, store, s.Store())
	require.Equal(t, 0, store.Len())

	// Spilling one block moves only that block.
	require.NoError(t, s.Spill(1))
	require.False(t, s.Resident(1))
	require.True(t, s.Resident(0))
	require.Equal(t, 1, store.Len())

	// Spilling an already spilled block is a no-op.
	require.NoError(t, s.Spill(1))
	require.Equal(t, 1, store.Len())

	blk, err := s.Chunk(1)
	require.NoError(t, err)
	require.Equal(t, []int32{3, 4}, blk.Data)
}

func TestSeries_SpillWithoutStoreFails(t *testing.T) {
	a := field.NewSeries([]int32{1, 2})
	s, err := Split(a, 1)
	require.NoError(t, err)

	require.Error(t, s.Spill(0))
}

func TestStore_Accounting(t *testing.T) {
	store, err := NewStore(WithCodec(compress.None))
	require.NoError(t, err)

	require.Equal(t, compress.None, store.CodecType())
	require.Equal(t, 0, store.Len())

	a := field.NewSeries([]float64{1, 2, 3, 4})
	s, err := Split(a, 2)
	require.NoError(t, err)
	require.NoError(t, s.SpillTo(store, "x"))

	require.Equal(t, 2, store.Len())
	// Two blocks of two uncompressed float64 words each.
	require.Equal(t, int64(32), store.CompressedBytes())
}

func TestStore_DistinctSeriesKeysDoNotCollide(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	a := field.NewSeries([]float64{1, 2})
	sa, err := Split(a, 1)
	require.NoError(t, err)
	require.NoError(t, sa.SpillTo(store, "a"))

	b := field.NewSeries([]float64{9, 8})
	sb, err := Split(b, 1)
	require.NoError(t, err)
	require.NoError(t, sb.SpillTo(store, "b"))

	require.Equal(t, 4, store.Len())

	fullA, err := sa.Materialize()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, fullA.Data)

	fullB, err := sb.Materialize()
	require.NoError(t, err)
	require.Equal(t, []float64{9, 8}, fullB.Data)
}

func TestStore_UnknownCodec(t *testing.T) {
	_, err := NewStore(WithCodec(compress.Type(0x7f)))
	require.Error(t, err)
}
