package runlen

import (
	"errors"
	"fmt"
)

// ErrBadWindow reports a minimum run length below 1.
var ErrBadWindow = errors.New("runlen: window must be >= 1")

// IndexNotFound is the sentinel returned by position statistics when no
// qualifying run exists. It is never a valid time index.
const IndexNotFound = -1

// checkWindow validates the window argument shared by all statistics.
func checkWindow(window int) error {
	if window < 1 {
		return fmt.Errorf("%w, got %d", ErrBadWindow, window)
	}

	return nil
}
