package field

import "fmt"

// ShapeMismatchError reports arrays that were required to share a shape (or
// a time-axis length) but do not. It fails fast: no operation in this module
// broadcasts beyond standard elementwise alignment.
type ShapeMismatchError struct {
	// Op names the operation and the offending argument, e.g. "spell.Find: stop".
	Op   string
	Want []int
	Got  []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: want %v, got %v", e.Op, e.Want, e.Got)
}

// CheckSameShape returns a ShapeMismatchError when b's dims or shape differ
// from a's. The op string identifies the caller and argument for the error
// message.
func CheckSameShape[T, U any](op string, a *Array[T], b *Array[U]) error {
	if len(a.shape) != len(b.shape) {
		return &ShapeMismatchError{Op: op, Want: a.Shape(), Got: b.Shape()}
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] || a.dims[i] != b.dims[i] {
			return &ShapeMismatchError{Op: op, Want: a.Shape(), Got: b.Shape()}
		}
	}

	return nil
}
