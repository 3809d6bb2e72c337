// Package gridflow computes the steady-state electrical state of a power network:
// bus voltages, angles, branch flows and slack output.
//
// What is gridflow?
//
//	A dense-matrix power-flow library with:
//		• AC Newton-Raphson in two strategies: full 2N×2N Jacobian and fast decoupled
//		• DC linear approximation with branch flows and slack output
//		• Boundary pinning for the slack bus and voltage-regulating generators
//		• Reactive-limit enforcement that releases clamped generators to PQ behaviour
//		• Reactive-voltage sensitivity snapshots returned with every AC result
//		• Island diagnostics on singular systems
//
// Subpackages:
//
//	matrix/       dense real/complex matrices, LU with partial pivoting, pinning
//	network/      bus and branch contracts, reference models, endpoint resolution, islands
//	newton/       Y-bus, injections, Jacobians, boundary enforcer, Newton engine
//	dc/           B-bus, slack pinning, DC solve and flows
//	sensitivity/  immutable Jacobian snapshot and per-bus dQ/dV map
//	config/       YAML + environment configuration, zap logger construction
//	metrics/      Prometheus collector for solve outcomes
//	batch/        bounded concurrent solving of independent snapshots
//
// Quick start:
//
//	sys := network.NewSystem(
//		[]network.ACBus{network.NewSlackBus(1, 1.0), network.NewLoadBus(2, -0.5, -0.2)},
//		[]network.ACBranch{network.NewLine(1, 2, 0.01, 0.1)},
//	)
//	res, err := newton.Solve(sys, newton.WithMethod(newton.DecoupledNewton))
//	if err != nil {
//		// singular systems wrap matrix.ErrSingular and carry network.SingularError islands
//	}
//	if !res.Converged {
//		// iteration budget exhausted; not an error
//	}
//
// Solves are synchronous and keep no global state; run independent snapshots
// concurrently with batch.Runner.
package gridflow
