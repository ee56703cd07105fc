//go:build cgo

package compress

import "github.com/valyala/gozstd"

// Compress compresses the chunk payload with libzstd at level 3, the
// ratio/speed sweet spot for packed condition masks.
//
// Parameters:
//   - data: Packed chunk payload to compress
//
// Returns:
//   - []byte: Compressed payload
//   - error: Always nil
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses a Zstandard chunk payload with libzstd.
//
// Parameters:
//   - data: Zstandard-compressed payload
//
// Returns:
//   - []byte: Decompressed payload (nil if input is empty)
//   - error: Decompression error when the payload is corrupted
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
