package extract

import (
	"errors"
	"fmt"
)

// ErrDequeueLimit is returned when a run dequeues more attributes than the
// configured bound, which means some parser keeps requeueing.
var ErrDequeueLimit = errors.New("dequeue limit exceeded")

// InputError reports a malformed input record
type InputError struct {
	Index int
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %d: %v", e.Index, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
