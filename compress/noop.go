package compress

// NoOpCodec passes chunk payloads through unchanged. It is the default for
// in-memory series where the store exists only to bound resident chunks, and
// it is the baseline in codec benchmarks.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a new pass-through codec.
//
// Returns:
//   - NoOpCodec: New pass-through codec instance
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns a copy of the input. The chunk store retains compressed
// payloads while callers reuse their packing buffers, so pass-through must
// still detach from the input slice.
//
// Parameters:
//   - data: Packed chunk payload
//
// Returns:
//   - []byte: Copy of the input (nil if input is empty)
//   - error: Always nil
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return append([]byte(nil), data...), nil
}

// Decompress returns the input slice as-is, without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
// Unpacking always allocates the typed block, so no caller mutates it.
//
// Parameters:
//   - data: Stored payload (returned as-is)
//
// Returns:
//   - []byte: Same slice as input data
//   - error: Always nil
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
