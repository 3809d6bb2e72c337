package batch

import "errors"

var (
	// ErrInvalidOptions is returned by NewRunner for an unusable Option.
	ErrInvalidOptions = errors.New("batch: invalid option supplied")

	// ErrInvalidJob is reported for a job carrying no snapshot or both kinds.
	ErrInvalidJob = errors.New("batch: job must carry exactly one AC or DC system")

	// ErrCancelled is reported for jobs skipped after cancellation.
	ErrCancelled = errors.New("batch: job cancelled before it started")
)

const opRun = "batch.Run"
