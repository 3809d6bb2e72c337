// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// LUP is an in-place LU factorization with row pivoting: P·A = L·U.
// L has a unit diagonal and is stored below the diagonal of lu; U is stored on and
// above it. piv[i] is the original row placed at position i.
type LUP struct {
	n   int
	lu  []float64
	piv []int
}

// Size returns the order of the factored matrix.
func (f *LUP) Size() int { return f.n }

// Factorize computes P·A = L·U with partial pivoting (largest |a_ik| in column k).
// MAIN DESCRIPTION:
//   - Gaussian elimination on a private copy of A; the input is never mutated.
//
// Implementation:
//   - Stage 1: validate m (not nil, square) and tol (finite, >= 0); copy into a flat buffer.
//   - Stage 2: for each column k pick the row with the largest magnitude at or below k.
//   - Stage 3: if that magnitude is <= tol the matrix is singular; otherwise swap rows,
//     store multipliers in column k and eliminate the trailing block.
//
// Behavior highlights:
//   - Deterministic: ties keep the first (lowest) row index.
//   - Zero rows/columns (isolated unknowns) always surface as ErrSingular.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (bad tol or non-finite entry), ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Factorize(m Matrix, tol float64) (*LUP, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return nil, matrixErrorf(opFactorize, ErrNaNInf)
	}

	n := m.Rows()
	f := &LUP{n: n, lu: make([]float64, n*n), piv: make([]int, n)}
	var i, j, k int
	var v float64
	var err error

	// Stage 1: private copy (fast-path for *Dense).
	if d, ok := m.(*Dense); ok {
		copy(f.lu, d.data)
	} else {
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return nil, matrixErrorf(opFactorize, err)
				}
				f.lu[i*n+j] = v
			}
		}
	}
	for i = 0; i < n*n; i++ {
		if math.IsNaN(f.lu[i]) || math.IsInf(f.lu[i], 0) {
			return nil, matrixErrorf(opFactorize, ErrNaNInf)
		}
	}
	for i = 0; i < n; i++ {
		f.piv[i] = i
	}

	// Stage 2-3: elimination column by column.
	var p int
	var best, pivot, mult float64
	a := f.lu
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= tol {
			return nil, matrixErrorf(opFactorize, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.piv[k], f.piv[p] = f.piv[p], f.piv[k]
		}
		pivot = a[k*n+k]
		for i = k + 1; i < n; i++ {
			mult = a[i*n+k] / pivot
			a[i*n+k] = mult
			if mult == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= mult * a[k*n+j]
			}
		}
	}

	return f, nil
}

// Solve returns x with A·x = b for the factored A. b is not mutated.
//
// Errors:
//   - ErrNilMatrix (nil b), ErrDimensionMismatch (len(b) != n).
//
// Complexity:
//   - Time O(n^2), Space O(n).
func (f *LUP) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n, a := f.n, f.lu
	x := make([]float64, n)
	var i, j int
	var sum float64

	// Forward substitution with permuted right-hand side: L·y = P·b.
	for i = 0; i < n; i++ {
		sum = b[f.piv[i]]
		for j = 0; j < i; j++ {
			sum -= a[i*n+j] * x[j]
		}
		x[i] = sum
	}
	// Back substitution: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= a[i*n+j] * x[j]
		}
		x[i] = sum / a[i*n+i]
	}

	return x, nil
}

// SolveTransposed returns x with Aᵀ·x = b for the factored A.
// With P·A = L·U we have Aᵀ = Uᵀ·Lᵀ·P, so solve Uᵀ·y = b, Lᵀ·z = y, x = Pᵀ·z.
//
// Complexity:
//   - Time O(n^2), Space O(n).
func (f *LUP) SolveTransposed(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolveT, err)
	}
	n, a := f.n, f.lu
	z := make([]float64, n)
	var i, j int
	var sum float64

	// Uᵀ is lower triangular.
	for i = 0; i < n; i++ {
		sum = b[i]
		for j = 0; j < i; j++ {
			sum -= a[j*n+i] * z[j]
		}
		z[i] = sum / a[i*n+i]
	}
	// Lᵀ is unit upper triangular.
	for i = n - 1; i >= 0; i-- {
		sum = z[i]
		for j = i + 1; j < n; j++ {
			sum -= a[j*n+i] * z[j]
		}
		z[i] = sum
	}
	x := make([]float64, n)
	for i = 0; i < n; i++ {
		x[f.piv[i]] = z[i]
	}

	return x, nil
}

// Solve factors m with DefaultPivotTolerance and solves m·x = b.
// Singular systems return an error matching ErrSingular.
func Solve(m Matrix, b []float64) ([]float64, error) {
	f, err := Factorize(m, DefaultPivotTolerance)
	if err != nil {
		return nil, err
	}

	return f.Solve(b)
}
