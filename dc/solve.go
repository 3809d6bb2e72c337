package dc

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// BuildBBus assembles the N×N susceptance matrix and reports how many branches
// were skipped for unmatched endpoints.
//
// Stamps per resolved branch with susceptance b′:
//
//	B[f][t] += b′   B[t][f] += b′   B[f][f] −= b′   B[t][t] −= b′
//
// Complexity: Time O(E·N + N²), Space O(N²).
func BuildBBus(buses []network.DCBus, branches []network.DCBranch) (*matrix.Dense, int, error) {
	b, err := matrix.NewDense(len(buses), len(buses))
	if err != nil {
		return nil, 0, dcErrorf(opBBus, err)
	}
	var skipped int
	var bp float64
	var rowF, rowT []float64
	for _, br := range branches {
		from, to, ok := network.ResolveEndpoints(buses, br)
		if !ok {
			skipped++
			continue
		}
		if rowF, err = b.Row(from); err != nil {
			return nil, skipped, dcErrorf(opBBus, err)
		}
		if rowT, err = b.Row(to); err != nil {
			return nil, skipped, dcErrorf(opBBus, err)
		}
		bp = br.BPrime()
		rowF[to] += bp
		rowT[from] += bp
		rowF[from] -= bp
		rowT[to] -= bp
	}

	return b, skipped, nil
}

// Solve runs the DC power flow for sys.
//
// Implementation:
//   - Stage 1: validate options, snapshot and the single slack bus.
//   - Stage 2: build B, pin the slack row/column and zero its right-hand side.
//   - Stage 3: solve B·θ = P once.
//   - Stage 4: for every resolved branch compute −b′(θ_f − θ_t), record it on the
//     branch when it is a network.FlowRecorder and accumulate per-bus outputs.
//
// Errors:
//   - ErrInvalidOptions, ErrNilSystem, network.ErrEmptySystem / ErrNoSlack / ErrMultipleSlack,
//     *network.SingularError wrapping matrix.ErrSingular.
func Solve(sys network.DCSystem, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	res := Result{RunID: uuid.NewString()}
	if o.err != nil {
		return res, o.err
	}
	if sys == nil {
		return res, ErrNilSystem
	}
	buses, branches := sys.BusList(), sys.EnergizedBranchList()
	slack, err := network.SlackIndex(buses)
	if err != nil {
		return res, dcErrorf(opSolve, err)
	}
	log := o.Logger.With(zap.String("component", "dc"), zap.String("run_id", res.RunID))

	b, skipped, err := BuildBBus(buses, branches)
	if err != nil {
		return res, err
	}
	res.SkippedBranches = skipped
	if skipped > 0 {
		log.Warn("branches skipped for unmatched endpoints", zap.Int("skipped", skipped))
	}

	power := make([]float64, len(buses))
	for i, bus := range buses {
		power[i] = bus.MW()
	}
	power[slack] = 0
	if err = b.Pin(slack, Stiffness); err != nil {
		return res, dcErrorf(opSolve, err)
	}
	if o.Verbose {
		log.Debug("susceptance matrix built", zap.Stringer("bbus", b), zap.Float64s("mw", power))
	}

	lu, err := matrix.Factorize(b, o.PivotTolerance)
	if err == nil {
		res.Angles, err = lu.Solve(power)
	}
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			err = network.DiagnoseSingular(buses, branches, err)
		}
		log.Error("linear solve failed", zap.Error(err))

		return res, dcErrorf(opSolve, err)
	}

	res.BusOutput = make([]float64, len(buses))
	res.Flows = make([]Flow, 0, len(branches))
	theta := res.Angles
	for k, br := range branches {
		from, to, ok := network.ResolveEndpoints(buses, br)
		if !ok {
			continue
		}
		bp := br.BPrime()
		mw := -bp * (theta[from] - theta[to])
		res.Flows = append(res.Flows, Flow{Index: k, From: br.FromBus(), To: br.ToBus(), MW: mw})
		res.BusOutput[from] += mw
		res.BusOutput[to] += -bp * (theta[to] - theta[from])
		if rec, ok := br.(network.FlowRecorder); ok {
			rec.SetFlow(mw)
		}
	}
	res.SlackOutput = res.BusOutput[slack]
	res.Converged = true

	if o.Verbose {
		log.Debug("angles solved", zap.Float64s("theta", theta))
	}
	log.Info("solve finished",
		zap.Int("flows", len(res.Flows)),
		zap.Float64("slack_output", res.SlackOutput),
	)

	return res, nil
}
