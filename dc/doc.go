// Package dc solves the linearized (DC) power flow in a single direct solve.
//
// What
//
//   - BuildBBus assembles the susceptance matrix: +b′ on off-diagonals, −b′ on both
//     diagonals, summed over parallel branches.
//   - Solve pins the slack bus, solves B·θ = P for the bus angles and derives every
//     branch flow as −b′·(θ_from − θ_to), per-bus outputs and the slack output.
//
// Contract
//
//	There is no iteration and therefore no divergence: a successful Solve always
//	reports Converged=true. A singular B (isolated bus, island without a slack)
//	is a fatal error that unwraps to matrix.ErrSingular and carries the island
//	structure in a *network.SingularError.
//
//	Branches implementing network.FlowRecorder receive their flow. Branches whose
//	endpoints are not both in the bus list are skipped and counted in
//	Result.SkippedBranches.
//
// Usage
//
//	res, err := dc.Solve(network.NewSystem(buses, branches), dc.WithLogger(logger))
//	if err != nil {
//		// configuration, topology or singular matrix
//	}
//	fmt.Println(res.SlackOutput)
//
// Complexity: Time O(E·N + N³), Memory O(N²).
package dc
