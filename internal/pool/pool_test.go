package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSlices_ExactLength(t *testing.T) {
	i32, done := GetInt32Slice(10)
	require.Len(t, i32, 10)
	done()

	f64, done := GetFloat64Slice(3)
	require.Len(t, f64, 3)
	done()

	b, done := GetBoolSlice(0)
	require.Len(t, b, 0)
	done()
}

func TestGetSlices_ReuseGrowsCapacity(t *testing.T) {
	s, done := GetInt32Slice(4)
	for i := range s {
		s[i] = int32(i)
	}
	done()

	// A fresh Get may hand back the same backing array with stale contents.
	s2, done := GetInt32Slice(8)
	defer done()
	require.Len(t, s2, 8)
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBuffer_ExtendZeroed(t *testing.T) {
	bb := NewByteBuffer(4)
	_, err := bb.Write([]byte{0xff})
	require.NoError(t, err)

	ext := bb.ExtendZeroed(8)
	require.Len(t, ext, 8)
	for _, v := range ext {
		require.Equal(t, byte(0), v)
	}
	require.Equal(t, 9, bb.Len())
	require.Equal(t, byte(0xff), bb.Bytes()[0])
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	small := p.Get()
	small.ExtendZeroed(16)
	p.Put(small)

	big := p.Get()
	big.ExtendZeroed(1024)
	p.Put(big) // over threshold, dropped

	next := p.Get()
	require.LessOrEqual(t, cap(next.B), 64)
	p.Put(next)
}

func TestChunkBufferPool_RoundTrip(t *testing.T) {
	bb := GetChunkBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	_, err := bb.Write([]byte{1})
	require.NoError(t, err)
	PutChunkBuffer(bb)

	again := GetChunkBuffer()
	require.Equal(t, 0, again.Len())
	PutChunkBuffer(again)
}
