package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/climrun/compress"
	"github.com/arloliu/climrun/internal/options"
)

// ErrChunkMissing reports a store lookup for a block that was never spilled
// or has been deleted. Hitting it through Series.Chunk indicates internal
// corruption, not a user error.
var ErrChunkMissing = errors.New("chunk: block not found in store")

// Store holds spilled blocks bitpacked and compressed, keyed by the xxhash64
// of the owning series ID and the block ordinal. It is safe for concurrent
// use: statistics realize blocks from errgroup workers.
type Store struct {
	mu    sync.RWMutex
	codec compress.Codec
	ctype compress.Type

	blocks          map[uint64][]byte
	compressedBytes int64
}

// StoreOption is a functional option for configuring a Store.
type StoreOption = options.Option[*Store]

// WithCodec selects the codec used for spilled block payloads.
// The default is Zstd.
//
// Parameters:
//   - t: Codec type for block payloads (None, Zstd, S2, LZ4)
//
// Returns:
//   - StoreOption: Option that errors at NewStore when t is unknown
func WithCodec(t compress.Type) StoreOption {
	return options.New(func(st *Store) error {
		codec, err := compress.ForType(t)
		if err != nil {
			return err
		}
		st.codec = codec
		st.ctype = t

		return nil
	})
}

// NewStore creates an empty chunk store.
//
// Parameters:
//   - opts: Store options (WithCodec)
//
// Returns:
//   - *Store: New empty store
//   - error: Option validation error if any
func NewStore(opts ...StoreOption) (*Store, error) {
	st := &Store{
		codec:  compress.NewZstdCodec(),
		ctype:  compress.Zstd,
		blocks: make(map[uint64][]byte),
	}
	if err := options.Apply(st, opts...); err != nil {
		return nil, err
	}

	return st, nil
}

// CodecType returns the codec the store compresses payloads with.
func (st *Store) CodecType() compress.Type {
	return st.ctype
}

// Len returns the number of blocks currently held.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.blocks)
}

// CompressedBytes returns the total compressed payload size currently held.
func (st *Store) CompressedBytes() int64 {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.compressedBytes
}

// put compresses and stores a packed payload under key, replacing any
// previous payload.
func (st *Store) put(key uint64, packed []byte) error {
	compressed, err := st.codec.Compress(packed)
	if err != nil {
		return fmt.Errorf("chunk: compressing block: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if prev, ok := st.blocks[key]; ok {
		st.compressedBytes -= int64(len(prev))
	}
	st.blocks[key] = compressed
	st.compressedBytes += int64(len(compressed))

	return nil
}

// get retrieves and decompresses the payload stored under key.
func (st *Store) get(key uint64) ([]byte, error) {
	st.mu.RLock()
	compressed, ok := st.blocks[key]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrChunkMissing
	}

	packed, err := st.codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("chunk: decompressing block: %w", err)
	}

	return packed, nil
}

// delete removes the payload stored under key, if any.
func (st *Store) delete(key uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if prev, ok := st.blocks[key]; ok {
		st.compressedBytes -= int64(len(prev))
		delete(st.blocks, key)
	}
}

// blockKey derives the store key for a series block. Series IDs are
// caller-chosen strings; the ordinal disambiguates blocks within a series.
func blockKey(seriesID string, ordinal int) uint64 {
	var d xxhash.Digest
	d.Reset()
	_, _ = d.WriteString(seriesID)

	var ord [8]byte
	binary.LittleEndian.PutUint64(ord[:], uint64(ordinal))
	_, _ = d.Write(ord[:])

	return d.Sum64()
}
