package newton

import (
	"errors"
	"fmt"
)

// Sentinel errors for Newton execution. Non-convergence is never an error:
// it is reported through Result.Converged.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	// Raised before any matrix is allocated.
	ErrOptionViolation = errors.New("newton: invalid option supplied")

	// ErrNilSystem is returned when a nil PowerSystem is passed.
	ErrNilSystem = errors.New("newton: system is nil")

	// ErrHookAborted wraps an error returned by the OnIteration hook.
	ErrHookAborted = errors.New("newton: aborted by iteration hook")
)

// Operation tags for error wrapping.
const (
	opSolve    = "newton.Solve"
	opYBus     = "newton.BuildYBus"
	opJacobian = "newton.Jacobian"
	opStep     = "newton.Step"
)

func newtonErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
