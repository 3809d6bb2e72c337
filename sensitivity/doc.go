// Package sensitivity exposes the Jacobian left behind by an AC solve as an
// immutable snapshot.
//
// A Snapshot is created by the Newton solvers and returned inside their Result.
// It owns a private copy of the matrix and of the bus ordering used to build it, so
// it can be shared between readers without synchronization.
//
// The matrix is either the full 2N×2N Jacobian or the N×N voltage quadrant produced
// by the decoupled strategy. Map and At always read the diagonal of quadrant 4
// (∂Q/∂V): position i for an N×N snapshot, i+N for a 2N×2N one.
package sensitivity
