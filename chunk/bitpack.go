package chunk

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/climrun/internal/pool"
)

// Block payloads are self-describing in count only through the series
// metadata (bounds x space size), so the pack/unpack pairs carry no headers:
// booleans pack LSB-first eight to a byte, numeric elements pack as fixed
// little-endian words. Packers extend their buffer by the exact payload size
// up front and fill it in place.

// packBools appends the LSB-first bitpacked form of src to buf.
func packBools(buf *pool.ByteBuffer, src []bool) {
	ext := buf.ExtendZeroed((len(src) + 7) / 8)
	for i, v := range src {
		if v {
			ext[i/8] |= 1 << (uint(i) % 8)
		}
	}
}

// unpackBools reverses packBools for exactly count elements.
func unpackBools(payload []byte, count int) ([]bool, error) {
	if need := (count + 7) / 8; len(payload) != need {
		return nil, fmt.Errorf("chunk: bool payload is %d bytes, want %d for %d elements", len(payload), need, count)
	}

	out := make([]bool, count)
	for i := range out {
		out[i] = payload[i/8]&(1<<(uint(i)%8)) != 0
	}

	return out, nil
}

// packInt32s appends src as little-endian 4-byte words to buf.
func packInt32s(buf *pool.ByteBuffer, src []int32) {
	ext := buf.ExtendZeroed(len(src) * 4)
	for i, v := range src {
		binary.LittleEndian.PutUint32(ext[i*4:], uint32(v))
	}
}

// unpackInt32s reverses packInt32s for exactly count elements.
func unpackInt32s(payload []byte, count int) ([]int32, error) {
	if len(payload) != count*4 {
		return nil, fmt.Errorf("chunk: int32 payload is %d bytes, want %d for %d elements", len(payload), count*4, count)
	}

	out := make([]int32, count)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(payload[i*4:]))
	}

	return out, nil
}

// packFloat64s appends src as little-endian 8-byte IEEE words to buf.
func packFloat64s(buf *pool.ByteBuffer, src []float64) {
	ext := buf.ExtendZeroed(len(src) * 8)
	for i, v := range src {
		binary.LittleEndian.PutUint64(ext[i*8:], math.Float64bits(v))
	}
}

// unpackFloat64s reverses packFloat64s for exactly count elements.
func unpackFloat64s(payload []byte, count int) ([]float64, error) {
	if len(payload) != count*8 {
		return nil, fmt.Errorf("chunk: float64 payload is %d bytes, want %d for %d elements", len(payload), count*8, count)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
	}

	return out, nil
}

// marshalSlice packs a block's backing slice for the store, appending to buf.
func marshalSlice[T any](buf *pool.ByteBuffer, src []T) error {
	switch data := any(src).(type) {
	case []bool:
		packBools(buf, data)
		return nil
	case []int32:
		packInt32s(buf, data)
		return nil
	case []float64:
		packFloat64s(buf, data)
		return nil
	default:
		return fmt.Errorf("chunk: unsupported element type %T for spill", src)
	}
}

// unmarshalSlice reverses marshalSlice for exactly count elements.
func unmarshalSlice[T any](payload []byte, count int) ([]T, error) {
	var zero []T
	switch any(zero).(type) {
	case []bool:
		v, err := unpackBools(payload, count)
		return any(v).([]T), err
	case []int32:
		v, err := unpackInt32s(payload, count)
		return any(v).([]T), err
	case []float64:
		v, err := unpackFloat64s(payload, count)
		return any(v).([]T), err
	default:
		return nil, fmt.Errorf("chunk: unsupported element type %T for spill", zero)
	}
}
