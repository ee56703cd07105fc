package pool

import "sync"

// Slice pools for efficient reuse of typed scratch slices.
// The run-length encoder allocates one counter row and one baseline row per
// space point per chunk; pooling them keeps the chunked path allocation-free
// after warmup.
var (
	int32SlicePool = sync.Pool{
		New: func() any { return &[]int32{} },
	}
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	boolSlicePool = sync.Pool{
		New: func() any { return &[]bool{} },
	}
)

// GetInt32Slice retrieves an int32 slice of the exact requested length from
// the pool. The caller must call the returned cleanup function (typically
// with defer) to return the slice to the pool.
//
// The slice contents are not zeroed; callers that need zeroed memory must
// clear it themselves.
func GetInt32Slice(size int) ([]int32, func()) {
	ptr, _ := int32SlicePool.Get().(*[]int32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { int32SlicePool.Put(ptr) }
}

// GetFloat64Slice retrieves a float64 slice of the exact requested length
// from the pool. See GetInt32Slice for the usage contract.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetBoolSlice retrieves a bool slice of the exact requested length from the
// pool. See GetInt32Slice for the usage contract.
func GetBoolSlice(size int) ([]bool, func()) {
	ptr, _ := boolSlicePool.Get().(*[]bool)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]bool, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { boolSlicePool.Put(ptr) }
}
