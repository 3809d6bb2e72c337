package newton

import (
	"math"

	"github.com/katalvlaran/gridflow/network"
)

// verdict is the outcome of one mismatch check.
type verdict struct {
	adjust      bool
	converge    bool
	maxMismatch float64
}

// checkMismatch evaluates the adjust and converge criteria.
//
// Implementation:
//   - Stage 1: adjust holds when every non-slack generation bus has |ΔP| ≤ AdjustError
//     and every load bus has |ΔP|, |ΔQ| ≤ AdjustError. The same pass records the
//     largest checked mismatch.
//   - Stage 2: converge holds when every non-slack generation bus has |ΔP| ≤ ConvergeError
//     and, with limits enforced, passes CheckReactiveLimits(Q_i, adjust); and every load
//     bus has |ΔP|, |ΔQ| ≤ ConvergeError.
//
// Slack buses are excluded from both criteria. Stage 2 may mutate generator buses.
func checkMismatch(buses []network.ACBus, inj *injection, o *Options) verdict {
	v := verdict{adjust: true, converge: true}
	var dp, dq float64
	for i, b := range buses {
		if b.IsSlack() {
			continue
		}
		dp = math.Abs(inj.DP[i])
		v.maxMismatch = math.Max(v.maxMismatch, dp)
		if b.IsGeneration() {
			if dp > o.AdjustError {
				v.adjust = false
			}
			continue
		}
		dq = math.Abs(inj.DQ[i])
		v.maxMismatch = math.Max(v.maxMismatch, dq)
		if dp > o.AdjustError || dq > o.AdjustError {
			v.adjust = false
		}
	}

	for i, b := range buses {
		if b.IsSlack() {
			continue
		}
		dp = math.Abs(inj.DP[i])
		if b.IsGeneration() {
			if o.EnforceGenLimits && !b.CheckReactiveLimits(inj.Q[i], v.adjust) {
				v.converge = false
			} else if dp > o.ConvergeError {
				v.converge = false
			}
			continue
		}
		if dp > o.ConvergeError || math.Abs(inj.DQ[i]) > o.ConvergeError {
			v.converge = false
		}
	}

	return v
}
