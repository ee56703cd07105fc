package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	_, err := New([]float64{1, 2}, []string{"time"}, []int{2, 3}, "time")
	require.Error(t, err)

	_, err = New([]float64{1, 2}, []string{"time"}, []int{3}, "time")
	require.Error(t, err)

	_, err = New([]float64{1, 2}, []string{"lat"}, []int{2}, "time")
	require.Error(t, err)

	_, err = New([]float64{1, 2}, []string{"time"}, []int{-2}, "time")
	require.Error(t, err)

	a, err := New([]float64{1, 2, 3, 4, 5, 6}, []string{"lat", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)
	require.Equal(t, []string{"lat", "time"}, a.Dims())
	require.Equal(t, []int{2, 3}, a.Shape())
}

func TestNewSeries(t *testing.T) {
	a := NewSeries([]int32{1, 2, 3})

	require.Equal(t, 3, a.TimeLen())
	require.Equal(t, 1, a.SpaceSize())
	require.Equal(t, TimeDim, a.TimeDimName())
	require.Equal(t, int32(2), a.At(0, 1))
}

func TestArray_StridedAccess_TimeLast(t *testing.T) {
	data := []float64{
		0, 1, 2,
		10, 11, 12,
	}
	a, err := New(data, []string{"lat", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)

	require.Equal(t, 2, a.SpaceSize())
	require.Equal(t, 1, a.TimeStride())
	require.Equal(t, 3, a.Base(1))
	require.Equal(t, 11.0, a.At(1, 1))
}

func TestArray_StridedAccess_TimeFirst(t *testing.T) {
	data := []float64{
		0, 10,
		1, 11,
		2, 12,
	}
	a, err := New(data, []string{"time", "lat"}, []int{3, 2}, "time")
	require.NoError(t, err)

	require.Equal(t, 2, a.SpaceSize())
	require.Equal(t, 2, a.TimeStride())
	require.Equal(t, 1, a.Base(1))
	require.Equal(t, 11.0, a.At(1, 1))

	a.SetAt(0, 2, 99)
	require.Equal(t, 99.0, a.Data[4])
}

func TestArray_StridedAccess_TimeMiddle(t *testing.T) {
	// lat x time x lon: space points enumerate row-major over (lat, lon).
	data := make([]float64, 2*3*2)
	for i := range data {
		data[i] = float64(i)
	}
	a, err := New(data, []string{"lat", "time", "lon"}, []int{2, 3, 2}, "time")
	require.NoError(t, err)

	require.Equal(t, 4, a.SpaceSize())
	require.Equal(t, 2, a.TimeStride())

	// p enumerates (lat=0,lon=0), (lat=0,lon=1), (lat=1,lon=0), (lat=1,lon=1).
	require.Equal(t, 0.0, a.At(0, 0))
	require.Equal(t, 1.0, a.At(1, 0))
	require.Equal(t, 6.0, a.At(2, 0))
	require.Equal(t, 9.0, a.At(3, 1))
}

func TestArray_CopyRowSetRow(t *testing.T) {
	data := []float64{
		0, 10,
		1, 11,
		2, 12,
	}
	a, err := New(data, []string{"time", "lat"}, []int{3, 2}, "time")
	require.NoError(t, err)

	row := make([]float64, 3)
	a.CopyRow(1, row)
	require.Equal(t, []float64{10, 11, 12}, row)

	a.SetRow(1, []float64{7, 8, 9})
	require.Equal(t, 8.0, a.At(1, 1))
	require.Equal(t, []float64{0, 7, 1, 8, 2, 9}, a.Data)
}

func TestArray_SliceTime(t *testing.T) {
	data := []float64{
		0, 1, 2, 3,
		10, 11, 12, 13,
	}
	a, err := New(data, []string{"lat", "time"}, []int{2, 4}, "time")
	require.NoError(t, err)

	sub := a.SliceTime(1, 3)
	require.Equal(t, 2, sub.TimeLen())
	require.Equal(t, []float64{1, 2, 11, 12}, sub.Data)

	// The slice is a copy.
	sub.SetAt(0, 0, 99)
	require.Equal(t, 1.0, a.At(0, 1))

	require.Panics(t, func() { a.SliceTime(-1, 2) })
	require.Panics(t, func() { a.SliceTime(3, 2) })
	require.Panics(t, func() { a.SliceTime(0, 5) })
}

func TestLike(t *testing.T) {
	a, err := New(make([]bool, 6), []string{"lat", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)

	b := Like[float64](a)
	require.Equal(t, a.Dims(), b.Dims())
	require.Equal(t, a.Shape(), b.Shape())
	require.Equal(t, a.TimeLen(), b.TimeLen())
	require.Len(t, b.Data, 6)
}

func TestReduced(t *testing.T) {
	a, err := New(make([]bool, 6), []string{"lat", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)

	r := Reduced[int](a)
	require.Equal(t, []string{"lat"}, r.Dims())
	require.Equal(t, []int{2}, r.Shape())
	require.Equal(t, 0, r.TimeLen())
	require.Equal(t, "", r.TimeDimName())
	require.Equal(t, 2, r.SpaceSize())
	require.Len(t, r.Data, 2)
}

func TestReduced_SeriesYieldsScalar(t *testing.T) {
	r := Reduced[int](NewSeries([]bool{true, false}))

	require.Empty(t, r.Dims())
	require.Equal(t, 1, r.SpaceSize())
	require.Len(t, r.Data, 1)
}

func TestWithTimeLen(t *testing.T) {
	a, err := New(make([]bool, 6), []string{"lat", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)

	b := WithTimeLen[float64](a, 5)
	require.Equal(t, 5, b.TimeLen())
	require.Equal(t, []int{2, 5}, b.Shape())
	require.Len(t, b.Data, 10)
}

func TestAppendRunsDim(t *testing.T) {
	a, err := New(make([]bool, 6), []string{"time", "lat"}, []int{3, 2}, "time")
	require.NoError(t, err)

	r := AppendRunsDim[int32](a, "runs", 4)
	require.Equal(t, []string{"runs", "lat"}, r.Dims())
	require.Equal(t, []int{4, 2}, r.Shape())
	require.Len(t, r.Data, 8)

	// Slot access reuses the time-axis position.
	r.SetAt(1, 2, 7)
	require.Equal(t, int32(7), r.At(1, 2))
}

func TestCheckSameShape(t *testing.T) {
	a, err := New(make([]bool, 6), []string{"lat", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)
	b, err := New(make([]float64, 6), []string{"lat", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)

	require.NoError(t, CheckSameShape("op", a, b))

	c, err := New(make([]float64, 6), []string{"lon", "time"}, []int{2, 3}, "time")
	require.NoError(t, err)
	err = CheckSameShape("op", a, c)
	var shapeErr *ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	require.Contains(t, shapeErr.Error(), "op")

	d, err := New(make([]float64, 9), []string{"lat", "time"}, []int{3, 3}, "time")
	require.NoError(t, err)
	require.Error(t, CheckSameShape("op", a, d))
}
