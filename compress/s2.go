package compress

import "github.com/klauspost/compress/s2"

// S2Codec compresses chunk payloads with the Snappy-compatible S2 format.
// It is the fastest real codec here and a good fit for bitpacked boolean
// masks, which are dominated by runs the format handles well.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates a new S2 codec.
//
// Returns:
//   - S2Codec: New S2 codec instance
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress compresses the chunk payload using S2.
//
// Parameters:
//   - data: Packed chunk payload to compress
//
// Returns:
//   - []byte: Compressed payload (nil if input is empty)
//   - error: Always nil; S2 block encoding cannot fail
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses an S2-compressed chunk payload.
//
// Parameters:
//   - data: S2-compressed payload
//
// Returns:
//   - []byte: Decompressed payload (nil if input is empty)
//   - error: Decompression error when the payload is corrupted
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
