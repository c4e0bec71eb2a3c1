package cstr

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewFields indicates Split was asked for more parts than
	// the input's separators can produce.
	ErrTooFewFields = errors.New("too few fields")

	// ErrEmptySeparator indicates Split was called with an empty
	// separator string.
	ErrEmptySeparator = errors.New("empty separator")
)

// RangeError reports a View access outside the host-supplied element
// count. The count comes from the host, so a RangeError means the
// caller and the host disagree about the vector's shape.
type RangeError struct {
	Index int
	Count int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d out of range [1, %d]", e.Index, e.Count)
}
