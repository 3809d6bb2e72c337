package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/dc"
	"github.com/katalvlaran/gridflow/metrics"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/newton"
)

// DefaultWorkers bounds concurrent solves when WithWorkers is not given.
const DefaultWorkers = 4

// Job is one snapshot to solve. Exactly one of AC and DC must be set.
type Job struct {
	// ID labels the job in logs and outcomes; NewACJob and NewDCJob fill a UUID.
	ID string

	AC        network.ACSystem
	NewtonOps []newton.Option

	DC    network.DCSystem
	DCOps []dc.Option
}

// NewACJob wraps an AC snapshot solved by newton.Solve with opts.
func NewACJob(sys network.ACSystem, opts ...newton.Option) Job {
	return Job{ID: uuid.NewString(), AC: sys, NewtonOps: opts}
}

// NewDCJob wraps a DC snapshot solved by dc.Solve with opts.
func NewDCJob(sys network.DCSystem, opts ...dc.Option) Job {
	return Job{ID: uuid.NewString(), DC: sys, DCOps: opts}
}

// Outcome is the result of one job, at the same index as the job.
type Outcome struct {
	JobID string

	// AC or DC is set to match the job kind once the solver ran, even on error.
	AC *newton.Result
	DC *dc.Result

	Err     error
	Elapsed time.Duration
}

// Converged reports a successful, converged solve.
func (o Outcome) Converged() bool {
	switch {
	case o.Err != nil:
		return false
	case o.AC != nil:
		return o.AC.Converged
	case o.DC != nil:
		return o.DC.Converged
	}

	return false
}

// Option configures a Runner.
type Option func(*Options)

// Options holds the worker bound, cancellation policy and observers.
type Options struct {
	Workers  int
	FailFast bool
	Logger   *zap.Logger
	Metrics  *metrics.Collector

	err error
}

// DefaultOptions returns DefaultWorkers workers, no fail-fast and a no-op logger.
func DefaultOptions() Options {
	return Options{Workers: DefaultWorkers, Logger: zap.NewNop()}
}

// WithWorkers sets the number of concurrent solves (must be > 0).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: Workers must be > 0 (%d)", ErrInvalidOptions, n)
			return
		}
		o.Workers = n
	}
}

// WithFailFast cancels pending jobs after the first job error.
func WithFailFast(on bool) Option {
	return func(o *Options) { o.FailFast = on }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records every finished job on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *Options) { o.Metrics = c }
}
