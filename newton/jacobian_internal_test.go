package newton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// offNominal is a 3-bus state away from flat start, with charging and a tap.
func offNominal(t *testing.T) (*polarY, *matrix.CDense, []network.ACBus) {
	t.Helper()
	slack := network.NewSlackBus(1, 1.0)
	gen := network.NewGeneratorBus(2, 0.4, 1.02, -1, 1)
	gen.Theta = 0.03
	load := network.NewLoadBus(3, -0.9, -0.3)
	load.V, load.Theta, load.Shunt = 0.97, -0.06, 0.05
	buses := []network.ACBus{slack, gen, load}
	branches := []network.ACBranch{
		&network.Line{From: 1, To: 2, R: 0.01, X: 0.1, Charging: 0.02},
		&network.Line{From: 2, To: 3, R: 0.02, X: 0.12, Tap: 0.98},
		network.NewLine(1, 3, 0.015, 0.09),
	}
	y, skipped, err := BuildYBus(buses, branches)
	require.NoError(t, err)
	require.Zero(t, skipped)

	return newPolarY(y), y, buses
}

func TestFullJacobian_MatchesFiniteDifferences(t *testing.T) {
	yp, _, buses := offNominal(t)
	n := len(buses)
	jac, inj, err := fullJacobian(yp, buses)
	require.NoError(t, err)

	// Injections from the fused pass agree with the standalone evaluation.
	ref := computeInjection(yp, buses)
	assert.InDeltaSlice(t, ref.P, inj.P, 1e-12)
	assert.InDeltaSlice(t, ref.Q, inj.Q, 1e-12)
	assert.InDeltaSlice(t, ref.DQ, inj.DQ, 1e-12)

	const h = 1e-6
	perturb := func(j int, angle bool, d float64) *injection {
		b := buses[j]
		if angle {
			b.SetAngle(b.Angle() + d)
			defer b.SetAngle(b.Angle() - d)
		} else {
			b.SetVoltage(b.Voltage() + d)
			defer b.SetVoltage(b.Voltage() - d)
		}
		return computeInjection(yp, buses)
	}
	for j := 0; j < n; j++ {
		for col, angle := range map[int]bool{j: true, j + n: false} {
			plus, minus := perturb(j, angle, h), perturb(j, angle, -h)
			for i := 0; i < n; i++ {
				dP := (plus.P[i] - minus.P[i]) / (2 * h)
				dQ := (plus.Q[i] - minus.Q[i]) / (2 * h)
				gotP, _ := jac.At(i, col)
				gotQ, _ := jac.At(i+n, col)
				assert.InDelta(t, dP, gotP, 1e-5, "dP%d/dx%d", i, col)
				assert.InDelta(t, dQ, gotQ, 1e-5, "dQ%d/dx%d", i, col)
			}
		}
	}
}

func TestDecoupledQuadrants_RowSumsVanish(t *testing.T) {
	_, y, _ := offNominal(t)
	j1, j4, err := decoupledQuadrants(y)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		r1, _ := j1.Row(i)
		r4, _ := j4.Row(i)
		assert.InDelta(t, 0, r1[0]+r1[1]+r1[2], 1e-9)
		assert.InDelta(t, 0, r4[0]+r4[1]+r4[2], 1e-9)
		assert.Greater(t, r1[i], 0.0)
		assert.Greater(t, r4[i], 0.0)
	}
	y12, _ := y.At(0, 1)
	got, _ := j4.At(0, 1)
	assert.Equal(t, -imag(y12), got)
}

func TestEnforceFull_PinsSlackAndRegulators(t *testing.T) {
	yp, _, buses := offNominal(t)
	jac, inj, err := fullJacobian(yp, buses)
	require.NoError(t, err)
	rhs := inj.rhs()
	require.NoError(t, enforceFull(jac, rhs, buses))

	pinned := map[int]bool{0: true, 3: true, 4: true} // θ₁, V₁, V₂
	for k := 0; k < 6; k++ {
		d, _ := jac.At(k, k)
		if pinned[k] {
			assert.Equal(t, Stiffness, d)
			assert.Zero(t, rhs[k])
			continue
		}
		assert.NotEqual(t, Stiffness, d)
	}

	delta, err := matrix.Solve(jac, rhs)
	require.NoError(t, err)
	for k := range pinned {
		assert.Zero(t, delta[k])
	}
}

func TestEnforceFull_ReleasedGeneratorIsFree(t *testing.T) {
	yp, _, buses := offNominal(t)
	gen := buses[1].(*network.GeneratorBus)
	require.False(t, gen.CheckReactiveLimits(5, true))
	require.True(t, gen.Released())

	jac, inj, err := fullJacobian(yp, buses)
	require.NoError(t, err)
	require.NoError(t, enforceFull(jac, inj.rhs(), buses))
	d, _ := jac.At(4, 4)
	assert.NotEqual(t, Stiffness, d)
}

func TestCheckMismatch(t *testing.T) {
	opts := DefaultOptions()
	buses := []network.ACBus{
		network.NewSlackBus(1, 1),
		network.NewGeneratorBus(2, 0, 1, -0.5, 0.5),
		network.NewLoadBus(3, 0, 0),
	}
	inj := newInjection(3)

	// The slack mismatch never counts.
	inj.DP[0], inj.DQ[0] = 10, 10
	v := checkMismatch(buses, inj, &opts)
	assert.True(t, v.adjust)
	assert.True(t, v.converge)
	assert.Zero(t, v.maxMismatch)

	// Generator ΔQ is free; load ΔQ is not.
	inj.DQ[1] = 3
	inj.DQ[2] = 5e-3
	v = checkMismatch(buses, inj, &opts)
	assert.True(t, v.adjust)
	assert.False(t, v.converge)
	assert.Equal(t, 5e-3, v.maxMismatch)

	// Out-of-range generator output blocks convergence and, with adjust, releases it.
	inj.DQ[2] = 0
	inj.Q[1] = 0.9
	v = checkMismatch(buses, inj, &opts)
	assert.False(t, v.converge)
	assert.True(t, buses[1].(*network.GeneratorBus).Released())

	inj.Q[1] = 0.5
	v = checkMismatch(buses, inj, &opts)
	assert.True(t, v.converge)
}

func TestBuildYBus_StampsAndSkips(t *testing.T) {
	buses := []network.ACBus{network.NewSlackBus(1, 1), network.NewLoadBus(2, 0, 0)}
	block := [2][2]complex128{{complex(1, -10), complex(-1, 10)}, {complex(-1, 10), complex(1, -10)}}
	branches := []network.ACBranch{
		&network.Admittance{From: 1, To: 2, Y: block},
		&network.Admittance{From: 2, To: 1, Y: block},
		&network.Admittance{From: 1, To: 9, Y: block},
	}

	y, skipped, err := BuildYBus(buses, branches)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	y11, _ := y.At(0, 0)
	y12, _ := y.At(0, 1)
	assert.Equal(t, complex(2, -20), y11)
	assert.Equal(t, complex(-2, 20), y12)
}
