package newton_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/newton"
)

// TestBuildYBus_Properties: nominal-tap lines give a symmetric Y whose rows sum to
// the charging shunts, and every unresolvable branch is counted as skipped.
func TestBuildYBus_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		buses := make([]network.ACBus, n)
		for i := range buses {
			buses[i] = network.NewLoadBus(i+1, 0, 0)
		}
		charging := make([]float64, n)
		var branches []network.ACBranch
		for k, m := 0, rapid.IntRange(0, 12).Draw(t, "branches"); k < m; k++ {
			l := &network.Line{
				From:     rapid.IntRange(1, n+1).Draw(t, "from"),
				To:       rapid.IntRange(1, n+1).Draw(t, "to"),
				R:        rapid.Float64Range(0, 0.1).Draw(t, "r"),
				X:        rapid.Float64Range(0.01, 0.5).Draw(t, "x"),
				Charging: rapid.Float64Range(0, 0.1).Draw(t, "b"),
			}
			branches = append(branches, l)
			if l.From != l.To && l.From <= n && l.To <= n {
				charging[l.From-1] += l.Charging / 2
				charging[l.To-1] += l.Charging / 2
			}
		}

		y, skipped, err := newton.BuildYBus(buses, branches)
		require.NoError(t, err)
		require.Equal(t, network.CountUnresolved(buses, branches), skipped)
		for i := 0; i < n; i++ {
			var sum complex128
			for j := 0; j < n; j++ {
				a, _ := y.At(i, j)
				b, _ := y.At(j, i)
				require.Equal(t, a, b)
				sum += a
			}
			require.InDelta(t, 0, real(sum), 1e-9)
			require.InDelta(t, charging[i], imag(sum), 1e-9)
		}
	})
}
