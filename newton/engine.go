package newton

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/sensitivity"
)

// strategy is the part of a Newton solve that differs between full and decoupled.
type strategy interface {
	// prepare runs once, after the Y-bus is built and before the first iteration.
	prepare(y *matrix.CDense, yp *polarY, buses []network.ACBus) error
	// evaluate computes injections and mismatches for the current bus state.
	evaluate() (*injection, error)
	// step solves the pinned linear system(s) for Δθ and ΔV.
	step(inj *injection) (dTheta, dV []float64, err error)
	// snapshot returns the unpinned matrix kept for sensitivity analysis.
	snapshot() *matrix.Dense
}

func newStrategy(o *Options) strategy {
	if o.Method == DecoupledNewton {
		return &decoupled{opts: o}
	}

	return &full{opts: o}
}

// run drives the Newton state machine for one snapshot with the strategy built by mk.
//
// Implementation:
//   - Stage 1: validate options and the snapshot (bus count, single slack); hand the
//     converge tolerance to every network.ToleranceFollower bus.
//   - Stage 2: build Y and let the strategy prepare its matrices.
//   - Stage 3: iterate evaluate → criteria → hook; on converge or exhausted budget write
//     calculated P/Q back to every bus and snapshot the Jacobian, otherwise enforce
//     boundaries, solve and add the deltas to θ and V.
//
// Errors:
//   - ErrOptionViolation, ErrNilSystem, network.ErrEmptySystem / ErrNoSlack / ErrMultipleSlack,
//     *network.SingularError (unwraps to matrix.ErrSingular), ErrHookAborted.
//
// Complexity:
//   - Full: O(K·N³) for K iterations. Decoupled: O(N² + K·N³) with smaller constants.
func run(sys network.ACSystem, o Options, mk func(*Options) strategy) (Result, error) {
	res := Result{RunID: uuid.NewString(), Method: o.Method, State: StateInitializing}
	if err := o.validate(); err != nil {
		return res, err
	}
	if sys == nil {
		return res, ErrNilSystem
	}
	buses, branches := sys.BusList(), sys.EnergizedBranchList()
	if _, err := network.SlackIndex(buses); err != nil {
		return res, newtonErrorf(opSolve, err)
	}

	for _, b := range buses {
		if f, ok := b.(network.ToleranceFollower); ok {
			f.FollowTolerance(o.ConvergeError)
		}
	}

	log := o.Logger.With(
		zap.String("component", "newton"),
		zap.String("run_id", res.RunID),
		zap.Stringer("method", o.Method),
	)

	y, skipped, err := BuildYBus(buses, branches)
	if err != nil {
		return res, err
	}
	res.SkippedBranches = skipped
	if skipped > 0 {
		log.Warn("branches skipped for unmatched endpoints", zap.Int("skipped", skipped))
	}
	if o.Verbose {
		log.Debug("admittance matrix built",
			zap.Int("buses", len(buses)),
			zap.Int("branches", len(branches)),
			zap.Stringer("ybus", y),
		)
	}

	strat := mk(&o)
	if err = strat.prepare(y, newPolarY(y), buses); err != nil {
		return res, err
	}

	numbers := make([]int, len(buses))
	for i, b := range buses {
		numbers[i] = b.Number()
	}

	res.State = StateIteratingMismatch
	var (
		inj       *injection
		vd        verdict
		dTheta    []float64
		dV        []float64
		it        int
		stepError error
	)
	for it = 1; it <= o.MaxIterations; it++ {
		if inj, err = strat.evaluate(); err != nil {
			return res, err
		}
		if o.Verbose {
			log.Debug("mismatch",
				zap.Int("iteration", it),
				zap.Float64s("dp", inj.DP),
				zap.Float64s("dq", inj.DQ),
				zap.Stringer("jacobian", strat.snapshot()),
			)
		}

		vd = checkMismatch(buses, inj, &o)
		res.Iterations, res.MaxMismatch = it, vd.maxMismatch

		err = o.OnIteration(Iteration{
			Number:      it,
			MaxMismatch: vd.maxMismatch,
			Adjust:      vd.adjust,
			Converge:    vd.converge,
			Buses:       buses,
		})
		if err != nil {
			return res, fmt.Errorf("%s: %w: %w", opSolve, ErrHookAborted, err)
		}

		if vd.converge || it == o.MaxIterations {
			for i, b := range buses {
				b.SetMW(inj.P[i])
				b.SetMvar(inj.Q[i])
			}
			if res.Sensitivity, err = sensitivity.New(strat.snapshot(), numbers); err != nil {
				return res, newtonErrorf(opSolve, err)
			}

			break
		}

		if dTheta, dV, stepError = strat.step(inj); stepError != nil {
			if errors.Is(stepError, matrix.ErrSingular) {
				stepError = network.DiagnoseSingular(buses, branches, stepError)
			}
			log.Error("linear solve failed", zap.Int("iteration", it), zap.Error(stepError))

			return res, newtonErrorf(opStep, stepError)
		}
		for i, b := range buses {
			b.SetAngle(b.Angle() + dTheta[i])
			b.SetVoltage(b.Voltage() + dV[i])
		}
	}

	// The iteration that exhausts the budget counts as a failure even when its
	// mismatch check passed.
	res.Converged = res.Iterations < o.MaxIterations
	if res.Converged {
		res.State = StateConverged
		log.Info("solve converged",
			zap.Int("iterations", res.Iterations),
			zap.Float64("max_mismatch", res.MaxMismatch),
		)
	} else {
		res.State = StateMaxIterationsReached
		log.Warn("solve did not converge",
			zap.Int("iterations", res.Iterations),
			zap.Float64("max_mismatch", res.MaxMismatch),
		)
	}

	return res, nil
}
