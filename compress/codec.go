// Package compress provides the codecs used to keep spilled time chunks
// compact while they are resident in a chunk store.
//
// Payloads are bitpacked boolean condition masks or raw little-endian
// counter/weight rows, typically 8KiB-256KiB per chunk. Boolean masks are
// highly repetitive (long all-False stretches outside spells), so even the
// fast codecs (S2, LZ4) reclaim most of the space; Zstd trades CPU for the
// best ratio and is the default for store-backed series.
package compress

import "fmt"

// Type identifies a chunk payload codec.
type Type uint8

const (
	None Type = 0x1 // None stores chunk payloads uncompressed.
	Zstd Type = 0x2 // Zstd uses Zstandard (cgo when available, pure Go otherwise).
	S2   Type = 0x3 // S2 uses the Snappy-compatible S2 format.
	LZ4  Type = 0x4 // LZ4 uses LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Codec compresses and decompresses chunk payloads.
//
// Implementations must be safe for concurrent use: the chunk store
// compresses blocks from whatever goroutine releases them, and the chunked
// run-length scan realizes blocks from errgroup workers.
//
// Both methods return newly allocated (or pooled-internal) slices owned by
// the caller and never modify the input.
type Codec interface {
	// Compress compresses a chunk payload.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. It returns an error when the payload is
	// corrupted or was produced by a different codec.
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCodec(),
	Zstd: NewZstdCodec(),
	S2:   NewS2Codec(),
	LZ4:  NewLZ4Codec(),
}

// ForType retrieves the built-in Codec for the given type.
//
// Parameters:
//   - t: Codec type identifier
//
// Returns:
//   - Codec: The built-in codec for t
//   - error: When t names no built-in codec
func ForType(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported chunk codec: %s", t)
}
