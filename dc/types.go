package dc

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/matrix"
)

// Stiffness is the diagonal placed on the slack row of B.
const Stiffness = 1e10

// Option configures a DC solve.
type Option func(*Options)

// Options holds the linear-solve tolerance and logging settings.
type Options struct {
	PivotTolerance float64
	Logger         *zap.Logger
	Verbose        bool

	err error
}

// DefaultOptions returns matrix.DefaultPivotTolerance and a no-op logger.
func DefaultOptions() Options {
	return Options{PivotTolerance: matrix.DefaultPivotTolerance, Logger: zap.NewNop()}
}

// WithPivotTolerance overrides the singularity threshold (finite, >= 0).
func WithPivotTolerance(tol float64) Option {
	return func(o *Options) {
		if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
			o.err = fmt.Errorf("%w: PivotTolerance must be finite and >= 0 (%g)", ErrInvalidOptions, tol)
			return
		}
		o.PivotTolerance = tol
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithVerbose enables Debug traces of B and the angle vector.
func WithVerbose(on bool) Option {
	return func(o *Options) { o.Verbose = on }
}

// Flow is the computed real-power flow of one resolved branch, positive from → to.
type Flow struct {
	Index    int // position in the energized branch list
	From, To int // bus numbers
	MW       float64
}

// Result is the outcome of one DC solve.
type Result struct {
	RunID string

	// Angles are the bus angles in bus-list order (radians, slack = 0).
	Angles []float64
	Flows  []Flow

	// BusOutput is the sum of flows leaving each bus, in bus-list order.
	BusOutput   []float64
	SlackOutput float64

	SkippedBranches int
	Converged       bool
}

// FlowByBranch indexes Flows by their branch position.
func (r Result) FlowByBranch() map[int]float64 {
	out := make(map[int]float64, len(r.Flows))
	for _, f := range r.Flows {
		out[f.Index] = f.MW
	}

	return out
}
