package newton

import "github.com/katalvlaran/gridflow/network"

// Solve runs an AC power flow on sys with the strategy chosen by WithMethod.
// Bus voltages and angles are updated in place; on exit MW/Mvar hold the calculated
// injections. Non-convergence is reported through Result.Converged, never as an error.
//
// Example:
//
//	res, err := newton.Solve(sys, newton.WithMethod(newton.DecoupledNewton))
func Solve(sys network.ACSystem, opts ...Option) (Result, error) {
	return run(sys, buildOptions(opts), newStrategy)
}

// SolveFull runs the full Newton-Raphson strategy regardless of WithMethod.
func SolveFull(sys network.ACSystem, opts ...Option) (Result, error) {
	o := buildOptions(opts)
	o.Method = FullNewton

	return run(sys, o, newStrategy)
}

// SolveDecoupled runs the fast decoupled strategy regardless of WithMethod.
func SolveDecoupled(sys network.ACSystem, opts ...Option) (Result, error) {
	o := buildOptions(opts)
	o.Method = DecoupledNewton

	return run(sys, o, newStrategy)
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
