package compensation

import (
	"errors"
	"fmt"
)

// ErrPrimitiveFailure is matched by every error raised from a host
// primitive during a transition.
var ErrPrimitiveFailure = errors.New("primitive failure")

// PrimitiveError describes the host call that failed. The transition it
// belonged to has been rolled back; RollbackErr is set when undoing it
// failed as well.
type PrimitiveError struct {
	Op          string // "set", "has" or "baseline"
	Override    Override
	Err         error
	RollbackErr error
}

func (e *PrimitiveError) Error() string {
	msg := fmt.Sprintf("%s %s.%s: %v", e.Op, e.Override.Region, e.Override.Property, e.Err)
	if e.RollbackErr != nil {
		msg += fmt.Sprintf(" (rollback: %v)", e.RollbackErr)
	}
	return msg
}

func (e *PrimitiveError) Unwrap() []error {
	return []error{ErrPrimitiveFailure, e.Err}
}

// panicError carries a value recovered from a panicking primitive.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
