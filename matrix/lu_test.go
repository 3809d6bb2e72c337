package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/katalvlaran/gridflow/matrix"
)

// TestSolve_RequiresPivoting uses a zero leading entry that breaks a non-pivoting LU.
func TestSolve_RequiresPivoting(t *testing.T) {
	a := MustFrom(t, [][]float64{
		{0, 2, 1},
		{1, 1, 1},
		{2, 1, 0},
	})
	want := []float64{1, 2, 3}
	b, err := matrix.MatVec(a, want)
	require.NoError(t, err)

	x, err := matrix.Solve(a, b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, x, 1e-12)
}

func TestSolve_Singular(t *testing.T) {
	cases := map[string][][]float64{
		"ZeroRowAndColumn": {{2, 0, -1}, {0, 0, 0}, {-1, 0, 2}},
		"DuplicateRows":    {{1, 2}, {2, 4}},
		"ZeroRowSumIsland": {{1, -1}, {-1, 1}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := matrix.Solve(MustFrom(t, rows), make([]float64, len(rows)))
			require.ErrorIs(t, err, matrix.ErrSingular)
		})
	}
}

func TestFactorize_Validation(t *testing.T) {
	_, err := matrix.Factorize(MustDense(t, 2, 3), 0)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.Factorize(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.Factorize(MustDense(t, 2, 2), -1)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	f, err := matrix.Factorize(diagonallyDominant(t, 3), matrix.DefaultPivotTolerance)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Size())
	_, err = f.Solve([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestFactorize_GenericPathMatchesDense(t *testing.T) {
	a := diagonallyDominant(t, 5)
	b := []float64{1, 2, 3, 4, 5}
	x1, err := matrix.Solve(a, b)
	require.NoError(t, err)
	x2, err := matrix.Solve(hide{a}, b)
	require.NoError(t, err)
	assert.Equal(t, x1, x2)
}

func TestSolveTransposed(t *testing.T) {
	a := MustFrom(t, [][]float64{
		{0, 2, 1},
		{1, 1, 1},
		{3, 1, 0},
	})
	at := MustFrom(t, [][]float64{
		{0, 1, 3},
		{2, 1, 1},
		{1, 1, 0},
	})
	b := []float64{1, -2, 4}

	f, err := matrix.Factorize(a, matrix.DefaultPivotTolerance)
	require.NoError(t, err)
	x, err := f.SolveTransposed(b)
	require.NoError(t, err)

	want, err := matrix.Solve(at, b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, x, 1e-12)
}

// TestSolve_ResidualProperty checks A·Solve(A,b) ≈ b on random diagonally dominant systems.
func TestSolve_ResidualProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		a, _ := matrix.NewDense(n, n)
		b := make([]float64, n)
		for i := 0; i < n; i++ {
			var off float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				v := rapid.Float64Range(-5, 5).Draw(rt, "a")
				_ = a.Set(i, j, v)
				if v < 0 {
					off -= v
				} else {
					off += v
				}
			}
			_ = a.Set(i, i, off+rapid.Float64Range(0.5, 5).Draw(rt, "diag"))
			b[i] = rapid.Float64Range(-10, 10).Draw(rt, "b")
		}

		x, err := matrix.Solve(a, b)
		if err != nil {
			rt.Fatalf("Solve: %v", err)
		}
		got, _ := matrix.MatVec(a, x)
		for i := range b {
			if d := got[i] - b[i]; d > 1e-8 || d < -1e-8 {
				rt.Fatalf("residual[%d] = %g", i, d)
			}
		}
	})
}
