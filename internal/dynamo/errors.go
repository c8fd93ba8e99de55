package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for the animation and its hosts.
var (
	// ErrInvalidState indicates a NaN or Inf head position or velocity.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidViewport indicates a viewport with non-positive dimensions.
	ErrInvalidViewport = errors.New("dynamo: viewport dimensions must be positive")

	// ErrParameterBounds indicates a tuning value outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrNoFinish indicates an intro mounted without an OnFinish callback.
	ErrNoFinish = errors.New("dynamo: OnFinish callback is required")
)

// FrameError wraps an error with the frame it was detected on.
type FrameError struct {
	Frame   uint64
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
