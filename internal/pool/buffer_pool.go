package pool

import "sync"

// Default sizing for pooled chunk buffers. A bitpacked daily-resolution
// condition chunk of 365 steps over a 64x64 grid is ~187KiB, so the default
// accommodates a full chunk for typical grids while the threshold keeps the
// pool from retaining pathological continental-scale buffers.
const (
	ChunkBufferDefaultSize  = 1024 * 64       // 64KiB
	ChunkBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer is a reusable byte slice wrapper for bitpacked chunk payloads
// and codec scratch space.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ExtendZeroed grows the buffer by n zeroed bytes and returns the extension.
func (bb *ByteBuffer) ExtendZeroed(n int) []byte {
	start := len(bb.B)
	for cap(bb.B)-start < n {
		bb.B = append(bb.B[:cap(bb.B)], 0)
	}
	bb.B = bb.B[:start+n]
	ext := bb.B[start:]
	for i := range ext {
		ext[i] = 0
	}

	return ext
}

// ByteBufferPool is a pool of ByteBuffers used for bitpacking and codec
// round-trips. Buffers larger than maxThreshold are discarded on Put to
// prevent memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var chunkBufferPool = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)

// GetChunkBuffer retrieves a ByteBuffer from the shared chunk buffer pool.
func GetChunkBuffer() *ByteBuffer {
	return chunkBufferPool.Get()
}

// PutChunkBuffer returns a ByteBuffer to the shared chunk buffer pool.
func PutChunkBuffer(bb *ByteBuffer) {
	chunkBufferPool.Put(bb)
}
