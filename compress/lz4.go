package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse; the compressor
// keeps internal hash tables that benefit from warmup.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec compresses chunk payloads with LZ4 block compression.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 codec.
//
// Returns:
//   - LZ4Codec: New LZ4 codec instance
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses the chunk payload as a single LZ4 block.
//
// Parameters:
//   - data: Packed chunk payload to compress
//
// Returns:
//   - []byte: Compressed block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block of unknown original size.
//
// Chunk payload sizes are not stored alongside the compressed block, so the
// buffer starts at 4x the compressed size (the common expansion for packed
// masks) and doubles on lz4.ErrInvalidSourceShortBuffer up to a 128MiB
// safety limit.
//
// Parameters:
//   - data: LZ4-compressed block
//
// Returns:
//   - []byte: Decompressed payload (nil if input is empty)
//   - error: Decompression error when the block is corrupted or exceeds the limit
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
