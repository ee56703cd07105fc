package field

import "fmt"

// TimeDim is the conventional name of the time dimension. Constructors
// accept any name, but the convenience wrappers in the climrun root package
// assume this one.
const TimeDim = "time"

// Array is a labeled N-dimensional array with one dimension designated as
// the time axis. Data is row-major; dims[i] names the axis of extent
// shape[i]. A space-only Array (the result of a time reduction) has
// timeAxis == -1 and TimeLen 0.
type Array[T any] struct {
	Data []T

	dims  []string
	shape []int

	timeAxis   int // position of the time dim in dims, -1 if reduced away
	timeStride int

	spaceShape   []int // shapes of the non-time dims, in order
	spaceStrides []int // data strides of the non-time dims, in order
	spaceSize    int
}

// Typed aliases used throughout the module.
type (
	Bool    = Array[bool]
	Float64 = Array[float64]
	Int32   = Array[int32]
	Int     = Array[int]
)

// New creates an Array over data with the given dims and shape, designating
// timeDim as the time axis. It returns an error when the shape product does
// not match len(data), when dims and shape disagree in length, or when
// timeDim is not present.
func New[T any](data []T, dims []string, shape []int, timeDim string) (*Array[T], error) {
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("field.New: %d dims for %d shape entries", len(dims), len(shape))
	}

	size := 1
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("field.New: negative extent %d", s)
		}
		size *= s
	}
	if size != len(data) {
		return nil, &ShapeMismatchError{Op: "field.New: data", Want: []int{size}, Got: []int{len(data)}}
	}

	timeAxis := -1
	for i, d := range dims {
		if d == timeDim {
			timeAxis = i
			break
		}
	}
	if timeAxis < 0 {
		return nil, fmt.Errorf("field.New: time dim %q not in dims %v", timeDim, dims)
	}

	a := &Array[T]{
		Data:     data,
		dims:     append([]string(nil), dims...),
		shape:    append([]int(nil), shape...),
		timeAxis: timeAxis,
	}
	a.initStrides()

	return a, nil
}

// NewSeries creates a 1-dimensional time-only Array, the common case in
// tests and in per-space-point reference implementations.
func NewSeries[T any](data []T) *Array[T] {
	a, _ := New(data, []string{TimeDim}, []int{len(data)}, TimeDim)
	return a
}

// initStrides computes the row-major strides and the space decomposition.
func (a *Array[T]) initStrides() {
	n := len(a.shape)
	strides := make([]int, n)
	acc := 1
	for i := n - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= a.shape[i]
	}

	a.spaceShape = a.spaceShape[:0]
	a.spaceStrides = a.spaceStrides[:0]
	a.spaceSize = 1
	for i := range a.shape {
		if i == a.timeAxis {
			continue
		}
		a.spaceShape = append(a.spaceShape, a.shape[i])
		a.spaceStrides = append(a.spaceStrides, strides[i])
		a.spaceSize *= a.shape[i]
	}

	if a.timeAxis >= 0 {
		a.timeStride = strides[a.timeAxis]
	} else {
		a.timeStride = 0
	}
}

// Dims returns a copy of the dimension names.
func (a *Array[T]) Dims() []string {
	return append([]string(nil), a.dims...)
}

// Shape returns a copy of the dimension extents.
func (a *Array[T]) Shape() []int {
	return append([]int(nil), a.shape...)
}

// TimeDimName returns the name of the time dimension, or "" for a reduced
// space-only array.
func (a *Array[T]) TimeDimName() string {
	if a.timeAxis < 0 {
		return ""
	}

	return a.dims[a.timeAxis]
}

// TimeLen returns the extent of the time axis (0 for a reduced array).
func (a *Array[T]) TimeLen() int {
	if a.timeAxis < 0 {
		return 0
	}

	return a.shape[a.timeAxis]
}

// SpaceSize returns the product of the non-time extents (1 when the array
// is a bare time series).
func (a *Array[T]) SpaceSize() int {
	return a.spaceSize
}

// TimeStride returns the flat-data distance between consecutive time steps
// at a fixed space point.
func (a *Array[T]) TimeStride() int {
	return a.timeStride
}

// Base returns the flat offset of (space point p, time 0). Space points are
// enumerated row-major over the non-time dims, 0 <= p < SpaceSize().
func (a *Array[T]) Base(p int) int {
	off := 0
	for i := len(a.spaceShape) - 1; i >= 0; i-- {
		extent := a.spaceShape[i]
		off += (p % extent) * a.spaceStrides[i]
		p /= extent
	}

	return off
}

// At returns the value at space point p and time index t.
func (a *Array[T]) At(p, t int) T {
	return a.Data[a.Base(p)+t*a.timeStride]
}

// SetAt stores v at space point p and time index t.
func (a *Array[T]) SetAt(p, t int, v T) {
	a.Data[a.Base(p)+t*a.timeStride] = v
}

// CopyRow copies the full time series at space point p into dst, which must
// have length TimeLen().
func (a *Array[T]) CopyRow(p int, dst []T) {
	base := a.Base(p)
	stride := a.timeStride
	for t := range dst {
		dst[t] = a.Data[base+t*stride]
	}
}

// SetRow writes src as the full time series at space point p.
func (a *Array[T]) SetRow(p int, src []T) {
	base := a.Base(p)
	stride := a.timeStride
	for t, v := range src {
		a.Data[base+t*stride] = v
	}
}

// Like allocates a zero-valued array of element type U with the same dims,
// shape and time axis as a.
func Like[U, T any](a *Array[T]) *Array[U] {
	out := &Array[U]{
		Data:     make([]U, len(a.Data)),
		dims:     append([]string(nil), a.dims...),
		shape:    append([]int(nil), a.shape...),
		timeAxis: a.timeAxis,
	}
	out.initStrides()

	return out
}

// Reduced allocates a zero-valued array of element type U holding one value
// per space point of a: the same dims with the time axis removed. Reducing a
// bare time series yields a dimensionless scalar array of length 1.
func Reduced[U, T any](a *Array[T]) *Array[U] {
	dims := make([]string, 0, len(a.dims))
	shape := make([]int, 0, len(a.shape))
	for i := range a.dims {
		if i == a.timeAxis {
			continue
		}
		dims = append(dims, a.dims[i])
		shape = append(shape, a.shape[i])
	}

	out := &Array[U]{
		Data:     make([]U, a.spaceSize),
		dims:     dims,
		shape:    shape,
		timeAxis: -1,
	}
	out.initStrides()

	return out
}

// WithTimeLen allocates a zero-valued array of element type U shaped like a
// but with the time axis resized to n. Resampling uses this to emit one
// value per period along the original time dimension's position.
func WithTimeLen[U, T any](a *Array[T], n int) *Array[U] {
	shape := append([]int(nil), a.shape...)
	shape[a.timeAxis] = n

	size := 1
	for _, s := range shape {
		size *= s
	}

	out := &Array[U]{
		Data:     make([]U, size),
		dims:     append([]string(nil), a.dims...),
		shape:    shape,
		timeAxis: a.timeAxis,
	}
	out.initStrides()

	return out
}

// SliceTime returns a copy of the [lo, hi) time range of a, preserving all
// space dims. It panics when the range is out of bounds; callers slice with
// period boundaries that are validated upstream.
func (a *Array[T]) SliceTime(lo, hi int) *Array[T] {
	if lo < 0 || hi < lo || hi > a.TimeLen() {
		panic(fmt.Sprintf("field.SliceTime: bad range [%d, %d) for time length %d", lo, hi, a.TimeLen()))
	}

	out := WithTimeLen[T](a, hi-lo)
	n := hi - lo
	srcStride := a.timeStride
	dstStride := out.timeStride
	for p := 0; p < a.spaceSize; p++ {
		srcBase := a.Base(p)
		dstBase := out.Base(p)
		for t := 0; t < n; t++ {
			out.Data[dstBase+t*dstStride] = a.Data[srcBase+(lo+t)*srcStride]
		}
	}

	return out
}

// AppendRunsDim allocates a zero-valued array with the time axis of a
// replaced by a dimension named dim of extent n. Run-length distributions
// use this for their padded, fixed-capacity representation.
func AppendRunsDim[U, T any](a *Array[T], dim string, n int) *Array[U] {
	shape := append([]int(nil), a.shape...)
	shape[a.timeAxis] = n
	dims := append([]string(nil), a.dims...)
	dims[a.timeAxis] = dim

	size := 1
	for _, s := range shape {
		size *= s
	}

	out := &Array[U]{
		Data:     make([]U, size),
		dims:     dims,
		shape:    shape,
		timeAxis: a.timeAxis,
	}
	out.initStrides()

	return out
}
