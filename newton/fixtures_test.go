package newton_test

import (
	"math/cmplx"

	"github.com/katalvlaran/gridflow/network"
)

// twoBus is a slack feeding one load through a short line.
func twoBus() (*network.System[network.ACBus, network.ACBranch], *network.LoadBus) {
	load := network.NewLoadBus(2, -0.5, -0.2)
	sys := network.NewSystem(
		[]network.ACBus{network.NewSlackBus(1, 1.0), load},
		[]network.ACBranch{network.NewLine(1, 2, 0.01, 0.1)},
	)

	return sys, load
}

// meshed is a 3-bus triangle: slack, a regulating generator and a load.
func meshed(qmax float64) (*network.System[network.ACBus, network.ACBranch], *network.GeneratorBus, *network.LoadBus) {
	gen := network.NewGeneratorBus(2, 0.3, 1.05, -1.0, qmax)
	load := network.NewLoadBus(3, -0.8, -0.4)
	sys := network.NewSystem(
		[]network.ACBus{network.NewSlackBus(1, 1.0), gen, load},
		[]network.ACBranch{
			network.NewLine(1, 2, 0.01, 0.1),
			network.NewLine(2, 3, 0.01, 0.1),
			network.NewLine(1, 3, 0.02, 0.15),
		},
	)

	return sys, gen, load
}

// apparentPower recomputes S_i = V_i · conj(Σ_j Y_ij V_j) independently of the solver.
func apparentPower(sys network.ACSystem, i int) complex128 {
	buses := sys.BusList()
	phasor := func(b network.ACBus) complex128 { return cmplx.Rect(b.Voltage(), b.Angle()) }
	pos := func(n int) int {
		for k, b := range buses {
			if b.Number() == n {
				return k
			}
		}
		return -1
	}
	var current complex128
	for _, br := range sys.EnergizedBranchList() {
		f, t := pos(br.FromBus()), pos(br.ToBus())
		y := br.YBus()
		switch i {
		case f:
			current += y[0][0]*phasor(buses[f]) + y[0][1]*phasor(buses[t])
		case t:
			current += y[1][0]*phasor(buses[f]) + y[1][1]*phasor(buses[t])
		}
	}

	return phasor(buses[i]) * cmplx.Conj(current)
}
