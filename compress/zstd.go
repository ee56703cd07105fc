package compress

// ZstdCodec compresses chunk payloads with Zstandard. The implementation is
// selected at build time: the cgo build uses gozstd (libzstd bindings), and
// non-cgo builds fall back to the pure-Go klauspost implementation. The two
// produce interchangeable payloads.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstandard codec.
//
// Returns:
//   - ZstdCodec: New Zstandard codec instance
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
