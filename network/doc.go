// Package network defines the bus/branch capability contracts consumed by the
// power-flow solvers, plus reference implementations of them.
//
// What
//
//   - DCBus / DCBranch: the reduced contracts used by the DC solver.
//   - ACBus / ACBranch: the full contracts used by the Newton solvers. ACBus embeds
//     DCBus, so any AC bus can also be handed to the DC solver.
//   - PowerSystem[B, L]: an ordered bus list plus an ordered energized-branch list.
//   - FlowRecorder: optional branch capability that receives the DC flow.
//
// Reference models
//
//   - LoadBus (PQ), GeneratorBus (PV with reactive limits), SlackBus (reference).
//   - Line (π-model, AC and DC), Admittance (raw 2×2 block), DCLine (explicit b′).
//   - System: slice-backed PowerSystem.
//
// Topology helpers
//
//	ResolveEndpoints maps a branch to bus-list positions by scanning bus numbers.
//	A branch whose endpoint is absent from the bus list is reported as unresolved and
//	skipped by every builder; nothing is raised. Islands groups buses into connected
//	components over the resolved branches.
//
// Ownership
//
//	Bus and branch values are owned by the caller and outlive a solve. Solvers write
//	voltage, angle and power back onto the buses in place; they never retain them.
package network
