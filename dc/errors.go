package dc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions is returned when an Option carries an unusable value.
	ErrInvalidOptions = errors.New("dc: invalid option supplied")

	// ErrNilSystem is returned when a nil PowerSystem is passed.
	ErrNilSystem = errors.New("dc: system is nil")
)

const (
	opSolve = "dc.Solve"
	opBBus  = "dc.BuildBBus"
)

func dcErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
