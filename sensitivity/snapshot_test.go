package sensitivity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/sensitivity"
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func TestSnapshot_MapQuadrantOffset(t *testing.T) {
	full := mustDense(t, [][]float64{
		{1, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 3, 0},
		{0, 0, 0, 4},
	})
	s, err := sensitivity.New(full, []int{7, 9})
	require.NoError(t, err)
	assert.True(t, s.Full())
	assert.Equal(t, map[int]float64{7: 3, 9: 4}, s.Map())

	v, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	quad := mustDense(t, [][]float64{{5, 1}, {1, 6}})
	s, err = sensitivity.New(quad, []int{7, 9})
	require.NoError(t, err)
	assert.False(t, s.Full())
	assert.Equal(t, map[int]float64{7: 5, 9: 6}, s.Map())
}

func TestSnapshot_IsImmutable(t *testing.T) {
	m := mustDense(t, [][]float64{{5, 1}, {1, 6}})
	buses := []int{1, 2}
	s, err := sensitivity.New(m, buses)
	require.NoError(t, err)

	require.NoError(t, m.Set(0, 0, 100))
	buses[0] = 42
	assert.Equal(t, map[int]float64{1: 5, 2: 6}, s.Map())

	cp := s.Jacobian()
	require.NoError(t, cp.Set(1, 1, -1))
	v, _ := s.At(1)
	assert.Equal(t, 6.0, v)
	assert.Equal(t, []int{1, 2}, s.Buses())
}

func TestSnapshot_Errors(t *testing.T) {
	_, err := sensitivity.New(mustDense(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}), []int{1, 2})
	require.ErrorIs(t, err, sensitivity.ErrShape)

	_, err = sensitivity.New(nil, []int{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	s, err := sensitivity.New(mustDense(t, [][]float64{{1}}), []int{1})
	require.NoError(t, err)
	_, err = s.At(1)
	require.ErrorIs(t, err, sensitivity.ErrPosition)

	singular, err := sensitivity.New(mustDense(t, [][]float64{{1, 1}, {1, 1}}), []int{1, 2})
	require.NoError(t, err)
	_, err = singular.Inverse([]float64{1, 1})
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestSnapshot_InverseUsesTranspose(t *testing.T) {
	// Jᵀ = [[2,0],[1,4]]; Jᵀ·x = [2,9] → x = [1,2].
	s, err := sensitivity.New(mustDense(t, [][]float64{{2, 1}, {0, 4}}), []int{1, 2})
	require.NoError(t, err)
	x, err := s.Inverse([]float64{2, 9})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, x, 1e-12)
}

func TestSnapshot_String(t *testing.T) {
	s, err := sensitivity.New(mustDense(t, [][]float64{{1.23456, -2}, {0, 10.0004}}), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "1.235  -2\n0  10\n", s.String())
}
