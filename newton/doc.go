// Package newton solves the AC power-flow equations with the Newton-Raphson method.
//
// What
//
//   - BuildYBus assembles the complex admittance matrix of a PowerSystem.
//   - Solve iterates mismatch → criteria → boundary pinning → linear solve until the
//     mismatch falls under ConvergeError or MaxIterations is spent.
//   - Two strategies, selected with WithMethod:
//   - FullNewton: the exact 2N×2N Jacobian, rebuilt every iteration.
//   - DecoupledNewton: θ and V quadrants computed once from Y and solved separately.
//   - Generator reactive limits are checked once the adjust criterion holds; a
//     violating generator clamps its output and stops regulating voltage.
//
// State machine
//
//	Initializing → IteratingMismatch → {Converged, MaxIterationsReached}
//
//	Converged is reported only when the solve stops before its last permitted
//	iteration: a check that passes exactly on iteration MaxIterations still yields
//	Converged=false.
//
// Boundary conditions
//
//	Every step pins the slack bus angle and voltage, and the voltage of regulating
//	generators, by zeroing their Jacobian row and column, placing Stiffness on the
//	diagonal and zeroing the matching mismatch. Pinned states therefore never move.
//
// Errors
//
//   - ErrOptionViolation: rejected configuration, returned before any matrix work.
//   - ErrNilSystem, network.ErrEmptySystem, network.ErrNoSlack, network.ErrMultipleSlack.
//   - *network.SingularError: the linear solve met a singular matrix (isolated bus,
//     island without reference); errors.Is(err, matrix.ErrSingular) holds.
//   - ErrHookAborted: the OnIteration hook returned an error.
//
// Usage
//
//	sys := network.NewSystem(
//		[]network.ACBus{network.NewSlackBus(1, 1.0), network.NewLoadBus(2, -0.5, -0.2)},
//		[]network.ACBranch{network.NewLine(1, 2, 0.01, 0.1)},
//	)
//	res, err := newton.Solve(sys, newton.WithLogger(logger))
//	if err != nil {
//		// fatal: options, topology or singular matrix
//	}
//	if !res.Converged {
//		// iteration budget exhausted
//	}
//
// Complexity (N = buses, K = iterations)
//
//   - Time:   O(K·N³) dense LU per iteration (two N×N solves for the decoupled strategy).
//   - Memory: O(N²).
package newton
