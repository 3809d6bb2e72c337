package network

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySystem is returned when a snapshot carries no buses.
	ErrEmptySystem = errors.New("network: system has no buses")

	// ErrNoSlack is returned when no bus is flagged as slack.
	ErrNoSlack = errors.New("network: no slack bus")

	// ErrMultipleSlack is returned when more than one bus is flagged as slack.
	ErrMultipleSlack = errors.New("network: more than one slack bus")
)

// SingularError reports a fatal linear-solve failure together with the island
// structure of the snapshot, which is the usual cause (isolated bus, or a
// subnetwork without a reference). It unwraps to the matrix error, so
// errors.Is(err, matrix.ErrSingular) holds.
type SingularError struct {
	Islands [][]int
	// Unresolved counts branches dropped for a missing endpoint; a dangling
	// branch is a common reason for an island.
	Unresolved int
	Err        error
}

func (e *SingularError) Error() string {
	if e.Unresolved > 0 {
		return fmt.Sprintf("network: singular system (%d islands, %d unresolved branches): %v",
			len(e.Islands), e.Unresolved, e.Err)
	}

	return fmt.Sprintf("network: singular system (%d islands): %v", len(e.Islands), e.Err)
}

func (e *SingularError) Unwrap() error { return e.Err }

// DiagnoseSingular wraps err with the islands and unresolved branches of the snapshot.
func DiagnoseSingular[B Numbered, L Endpoints](buses []B, branches []L, err error) error {
	return &SingularError{
		Islands:    Islands(buses, branches),
		Unresolved: CountUnresolved(buses, branches),
		Err:        err,
	}
}

// SlackIndex returns the position of the single slack bus.
func SlackIndex[B DCBus](buses []B) (int, error) {
	if len(buses) == 0 {
		return -1, ErrEmptySystem
	}
	idx := -1
	for i, b := range buses {
		if !b.IsSlack() {
			continue
		}
		if idx != -1 {
			return -1, fmt.Errorf("buses %d and %d: %w", buses[idx].Number(), b.Number(), ErrMultipleSlack)
		}
		idx = i
	}
	if idx == -1 {
		return -1, ErrNoSlack
	}

	return idx, nil
}
