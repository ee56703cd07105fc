package runlen

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/climrun/chunk"
	"github.com/arloliu/climrun/compress"
	"github.com/arloliu/climrun/field"
)

func chunkedCounters(t *testing.T, b *field.Bool, sizes ...int) []int32 {
	t.Helper()

	s, err := chunk.Split(b, sizes...)
	require.NoError(t, err)

	cs, err := EncodeChunked(context.Background(), s)
	require.NoError(t, err)

	full, err := cs.Materialize()
	require.NoError(t, err)

	out := make([]int32, full.TimeLen())
	full.CopyRow(0, out)

	return out
}

func TestEncodeChunked_MatchesEager(t *testing.T) {
	b := boolSeries(t, 0, 1, 1, 1, 0, 1, 0, 0, 1, 1)
	want := counters(t, Encode(b))

	got := chunkedCounters(t, b, 5, 5)

	require.Equal(t, want, got)
}

func TestEncodeChunked_RunAcrossBoundary(t *testing.T) {
	// The run 3..6 straddles the cut at 5 and must keep counting through it.
	b := boolSeries(t, 0, 1, 0, 1, 1, 1, 1, 0)

	got := chunkedCounters(t, b, 5, 3)

	require.Equal(t, []int32{0, 1, 0, 1, 2, 3, 4, 0}, got)
}

func TestEncodeChunked_CarryThroughAllTrueBlock(t *testing.T) {
	// The middle block is entirely True, so the carry chain must survive two
	// boundaries in a row.
	b := boolSeries(t, 1, 1, 1, 1, 1, 1, 1, 0, 1)

	got := chunkedCounters(t, b, 3, 3, 3)

	require.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 0, 1}, got)
}

func TestEncodeChunked_EverySplitIsInvariant(t *testing.T) {
	b := boolSeries(t, 0, 1, 1, 1, 0, 1, 0, 0, 1, 1)
	want := counters(t, Encode(b))

	// Every two-way split of the ten steps.
	for cut := 1; cut < b.TimeLen(); cut++ {
		got := chunkedCounters(t, b, cut, b.TimeLen()-cut)
		require.Equal(t, want, got, "split at %d diverged", cut)
	}

	// A scattering of finer splits.
	for _, sizes := range [][]int{
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2},
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{9, 1},
	} {
		got := chunkedCounters(t, b, sizes...)
		require.Equal(t, want, got, "split %v diverged", sizes)
	}
}

func TestEncodeChunked_RandomSeriesMatchEager(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(64)
		data := make([]bool, n)
		for i := range data {
			data[i] = rng.Intn(2) == 1
		}
		b := field.NewSeries(data)
		want := counters(t, Encode(b))

		size := 1 + rng.Intn(n)
		got := chunkedCounters(t, b, size)
		require.Equal(t, want, got, "trial %d (n=%d, chunk=%d)", trial, n, size)
	}
}

func TestEncodeChunked_MultiDimensional(t *testing.T) {
	data := []bool{
		true, true, false, true, true, true,
		false, true, true, true, true, false,
	}
	b, err := field.New(data, []string{"lat", "time"}, []int{2, 6}, "time")
	require.NoError(t, err)

	s, err := chunk.Split(b, 2)
	require.NoError(t, err)
	cs, err := EncodeChunked(context.Background(), s)
	require.NoError(t, err)
	full, err := cs.Materialize()
	require.NoError(t, err)

	want := Encode(b)
	require.Equal(t, want.Data, full.Data)
}

func TestChunkedStats_MatchEager(t *testing.T) {
	ctx := context.Background()
	b := boolSeries(t, 0, 1, 1, 1, 0, 1, 0, 0, 1, 1)
	s, err := chunk.Split(b, 3)
	require.NoError(t, err)

	for _, window := range []int{1, 2, 3} {
		longest, err := LongestRunChunked(ctx, s, window)
		require.NoError(t, err)
		wantLongest, err := LongestRun(b, window)
		require.NoError(t, err)
		require.Equal(t, wantLongest.Data, longest.Data, "longest, window=%d", window)

		count, err := CountRunsChunked(ctx, s, window)
		require.NoError(t, err)
		wantCount, err := CountRuns(b, window)
		require.NoError(t, err)
		require.Equal(t, wantCount.Data, count.Data, "count, window=%d", window)

		total, err := TotalInRunsChunked(ctx, s, window)
		require.NoError(t, err)
		wantTotal, err := TotalInRuns(b, window)
		require.NoError(t, err)
		require.Equal(t, wantTotal.Data, total.Data, "total, window=%d", window)

		first, err := FirstRunIndexChunked(ctx, s, window)
		require.NoError(t, err)
		wantFirst, err := FirstRunIndex(b, window)
		require.NoError(t, err)
		require.Equal(t, wantFirst.Data, first.Data, "first, window=%d", window)

		last, err := LastRunIndexChunked(ctx, s, window)
		require.NoError(t, err)
		wantLast, err := LastRunIndex(b, window)
		require.NoError(t, err)
		require.Equal(t, wantLast.Data, last.Data, "last, window=%d", window)
	}
}

func TestChunkedStats_OpenRunAtEnd(t *testing.T) {
	ctx := context.Background()
	b := boolSeries(t, 0, 0, 1, 1, 1)
	s, err := chunk.Split(b, 2)
	require.NoError(t, err)

	longest, err := LongestRunChunked(ctx, s, 1)
	require.NoError(t, err)
	require.Equal(t, []int{3}, longest.Data)

	first, err := FirstRunIndexChunked(ctx, s, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2}, first.Data)
}

func TestChunkedStats_BadWindow(t *testing.T) {
	b := boolSeries(t, 1, 0)
	s, err := chunk.Split(b, 1)
	require.NoError(t, err)

	_, err = LongestRunChunked(context.Background(), s, 0)
	require.ErrorIs(t, err, ErrBadWindow)
}

func TestEncodeChunked_BackedInputSpillsCounters(t *testing.T) {
	b := boolSeries(t, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1)
	want := counters(t, Encode(b))

	s, err := chunk.Split(b, 3)
	require.NoError(t, err)
	store, err := chunk.NewStore(chunk.WithCodec(compress.None))
	require.NoError(t, err)
	require.NoError(t, s.SpillTo(store, "hot"))

	cs, err := EncodeChunked(context.Background(), s)
	require.NoError(t, err)

	// The counter series lives in the input's store under its own ID; no
	// counter block stays resident after the encode, and the input's blocks
	// went back to the store too.
	require.True(t, cs.Backed())
	require.NotEqual(t, s.ID(), cs.ID())
	for k := 0; k < cs.NumChunks(); k++ {
		require.False(t, cs.Resident(k), "counter block %d still resident", k)
		require.False(t, s.Resident(k), "input block %d still resident", k)
	}
	require.Equal(t, 2*s.NumChunks(), store.Len())

	full, err := cs.Materialize()
	require.NoError(t, err)
	got := make([]int32, full.TimeLen())
	full.CopyRow(0, got)
	require.Equal(t, want, got)
}

func TestChunkedStats_BackedInputLeavesStoreClean(t *testing.T) {
	b := boolSeries(t, 0, 1, 1, 1, 0, 1, 0, 0, 1, 1)

	s, err := chunk.Split(b, 4)
	require.NoError(t, err)
	store, err := chunk.NewStore(chunk.WithCodec(compress.None))
	require.NoError(t, err)
	require.NoError(t, s.SpillTo(store, "wet"))

	longest, err := LongestRunChunked(context.Background(), s, 1)
	require.NoError(t, err)
	require.Equal(t, []int{3}, longest.Data)

	// The transient counter blocks are dropped again once the statistic is
	// done; only the input's blocks remain.
	require.Equal(t, s.NumChunks(), store.Len())
}

func TestEncodeChunked_Canceled(t *testing.T) {
	b := boolSeries(t, 1, 1, 1, 1)
	s, err := chunk.Split(b, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = EncodeChunked(ctx, s)
	require.ErrorIs(t, err, context.Canceled)
}
