package newton

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/sensitivity"
)

// Method selects the Newton strategy.
type Method int

const (
	// FullNewton rebuilds the 2N×2N Jacobian every iteration.
	FullNewton Method = iota
	// DecoupledNewton builds the θ and V quadrants once per solve from Im(Y).
	DecoupledNewton
)

// String returns a stable name used in logs and metric labels.
func (m Method) String() string {
	switch m {
	case FullNewton:
		return "full"
	case DecoupledNewton:
		return "decoupled"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "full" / "decoupled" back to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "full", "":
		return FullNewton, nil
	case "decoupled":
		return DecoupledNewton, nil
	}

	return 0, fmt.Errorf("%w: unknown method %q", ErrOptionViolation, s)
}

// State is the position of a solve in the iteration state machine.
//
//	Initializing → IteratingMismatch → {Converged, MaxIterationsReached}
type State int

const (
	StateInitializing State = iota
	StateIteratingMismatch
	StateConverged
	StateMaxIterationsReached
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIteratingMismatch:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateMaxIterationsReached:
		return "max_iterations"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether s ends a solve.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateMaxIterationsReached
}

// Defaults for Options.
const (
	DefaultMaxIterations = 20
	DefaultAdjustError   = 1e-2
	DefaultConvergeError = 1e-4

	// Stiffness is the diagonal placed on pinned equations.
	Stiffness = 1e10
)

// Iteration is handed to the OnIteration hook after the mismatch check of every
// iteration, before the state update.
type Iteration struct {
	Number      int     // 1-based iteration counter
	MaxMismatch float64 // largest |ΔP| or |ΔQ| over non-slack buses
	Adjust      bool    // adjust criterion met
	Converge    bool    // converge criterion met
	Buses       []network.ACBus
}

// Option configures a solve via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when Solve runs.
type Option func(*Options)

// Options holds the numeric configuration and observability hooks of a solve.
type Options struct {
	Method           Method
	MaxIterations    int
	AdjustError      float64
	ConvergeError    float64
	EnforceGenLimits bool

	// PivotTolerance is the pivot magnitude below which the linear solve is singular.
	PivotTolerance float64

	// Logger receives Info/Warn outcome entries and, with Verbose, Debug traces of
	// the matrices. Logging never changes results.
	Logger  *zap.Logger
	Verbose bool

	// OnIteration may abort the solve by returning an error.
	OnIteration func(it Iteration) error

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns full Newton with 20 iterations, adjust 1e-2,
// converge 1e-4, generator limits enforced and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Method:           FullNewton,
		MaxIterations:    DefaultMaxIterations,
		AdjustError:      DefaultAdjustError,
		ConvergeError:    DefaultConvergeError,
		EnforceGenLimits: true,
		PivotTolerance:   matrix.DefaultPivotTolerance,
		Logger:           zap.NewNop(),
		OnIteration:      func(Iteration) error { return nil },
	}
}

// WithMethod selects the strategy.
func WithMethod(m Method) Option {
	return func(o *Options) {
		if m != FullNewton && m != DecoupledNewton {
			o.err = fmt.Errorf("%w: unknown method %d", ErrOptionViolation, int(m))
			return
		}
		o.Method = m
	}
}

// WithMaxIterations sets the iteration budget (must be > 0).
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithAdjustError sets the tolerance at which generator limits are evaluated.
func WithAdjustError(e float64) Option {
	return func(o *Options) {
		if !validTolerance(e) {
			o.err = fmt.Errorf("%w: AdjustError must be finite and >= 0 (%g)", ErrOptionViolation, e)
			return
		}
		o.AdjustError = e
	}
}

// WithConvergeError sets the tolerance at which the solution is accepted.
func WithConvergeError(e float64) Option {
	return func(o *Options) {
		if !validTolerance(e) {
			o.err = fmt.Errorf("%w: ConvergeError must be finite and >= 0 (%g)", ErrOptionViolation, e)
			return
		}
		o.ConvergeError = e
	}
}

// WithEnforceGenLimits toggles generator reactive-limit checks.
func WithEnforceGenLimits(on bool) Option {
	return func(o *Options) { o.EnforceGenLimits = on }
}

// WithPivotTolerance overrides the singularity threshold of the linear solve.
func WithPivotTolerance(tol float64) Option {
	return func(o *Options) {
		if !validTolerance(tol) {
			o.err = fmt.Errorf("%w: PivotTolerance must be finite and >= 0 (%g)", ErrOptionViolation, tol)
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

// WithVerbose enables Debug traces of Y-bus, Jacobians and mismatches.
func WithVerbose(on bool) Option {
	return func(o *Options) { o.Verbose = on }
}

// WithOnIteration registers a per-iteration hook.
func WithOnIteration(fn func(it Iteration) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnIteration = fn
		}
	}
}

func validTolerance(e float64) bool {
	return !math.IsNaN(e) && !math.IsInf(e, 0) && e >= 0
}

// validate re-checks fields, covering Options assembled by hand.
func (o *Options) validate() error {
	if o.err != nil {
		return o.err
	}
	switch {
	case o.MaxIterations <= 0:
		return fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrOptionViolation, o.MaxIterations)
	case !validTolerance(o.AdjustError):
		return fmt.Errorf("%w: AdjustError must be finite and >= 0 (%g)", ErrOptionViolation, o.AdjustError)
	case !validTolerance(o.ConvergeError):
		return fmt.Errorf("%w: ConvergeError must be finite and >= 0 (%g)", ErrOptionViolation, o.ConvergeError)
	case !validTolerance(o.PivotTolerance):
		return fmt.Errorf("%w: PivotTolerance must be finite and >= 0 (%g)", ErrOptionViolation, o.PivotTolerance)
	case o.Method != FullNewton && o.Method != DecoupledNewton:
		return fmt.Errorf("%w: unknown method %d", ErrOptionViolation, int(o.Method))
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.OnIteration == nil {
		o.OnIteration = func(Iteration) error { return nil }
	}

	return nil
}

// Result is the outcome of one AC solve.
type Result struct {
	RunID           string
	Method          Method
	State           State
	Converged       bool
	Iterations      int
	SkippedBranches int
	MaxMismatch     float64

	// Sensitivity holds the last unpinned Jacobian (full) or the V quadrant
	// (decoupled). Nil when the solve failed before the first snapshot.
	Sensitivity *sensitivity.Snapshot
}
