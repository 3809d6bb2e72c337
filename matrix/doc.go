// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernel used by the power-flow solvers.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set that return errors.
//   - CDense: the complex128 counterpart used for the network admittance matrix (Y-bus).
//   - Pin: zero a row and a column and stiffen the diagonal (boundary enforcement).
//   - Factorize / LUP: LU decomposition with partial (row) pivoting, reusable Solve and
//     SolveTransposed for a factored matrix.
//   - Solve: one-shot "factor then solve" for a right-hand side.
//
// All user-triggered failures are returned as package sentinels (see errors.go) wrapped
// with an operation tag, so callers match them with errors.Is. A singular system returns
// ErrSingular; it is never reported as a numeric NaN result.
//
// Matrices are meant for small and medium dense systems (hundreds of buses). Sparse
// storage is intentionally not offered.
package matrix
