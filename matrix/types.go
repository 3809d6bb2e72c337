// SPDX-License-Identifier: MIT

package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i or j is outside the matrix.
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Numeric constants shared by kernels.
const (
	// ZeroSum is the initial value of every accumulation.
	ZeroSum = 0.0

	// DefaultPivotTolerance is the magnitude below which the best pivot candidate
	// of a column is treated as zero and the system as singular.
	DefaultPivotTolerance = 1e-12
)

// Operation name constants for error wrapping.
const (
	opNewDense  = "NewDenseFrom"
	opNewCDense = "NewCDense"
	opPin       = "Pin"
	opFactorize = "Factorize"
	opSolve     = "Solve"
	opSolveT    = "SolveTransposed"
	opMatVec    = "MatVec"
)
