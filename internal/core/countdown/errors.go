package countdown

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks a transition requested from the wrong state.
// It signals a bug in the caller, not a runtime condition.
var ErrInvariantViolation = errors.New("invariant violation")

// InvariantError describes a rejected transition.
type InvariantError struct {
	Op        string
	Running   bool
	Remaining int
}

func (err *InvariantError) Error() string {
	state := "idle"
	if err.Running {
		state = "running"
	}
	return fmt.Sprintf("countdown %s while %s (remaining %ds): %v", err.Op, state, err.Remaining, ErrInvariantViolation)
}

func (err *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
