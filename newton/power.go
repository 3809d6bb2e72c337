package newton

import (
	"math"

	"github.com/katalvlaran/gridflow/network"
)

// injection holds calculated injections and mismatches, each of length N.
type injection struct {
	P, Q   []float64 // calculated injections
	DP, DQ []float64 // specified − calculated
}

func newInjection(n int) *injection {
	return &injection{
		P:  make([]float64, n),
		Q:  make([]float64, n),
		DP: make([]float64, n),
		DQ: make([]float64, n),
	}
}

// mismatch fills DP/DQ for bus i from the already computed P/Q:
// ΔP = P_spec − P, ΔQ = Q_spec + V²·B_shunt − Q.
func (inj *injection) mismatch(i int, b network.ACBus) {
	v := b.Voltage()
	inj.DP[i] = b.MW() - inj.P[i]
	inj.DQ[i] = b.Mvar() + v*v*b.Susceptance() - inj.Q[i]
}

// rhs returns [ΔP; ΔQ] as one 2N vector.
func (inj *injection) rhs() []float64 {
	out := make([]float64, 0, 2*len(inj.DP))
	out = append(out, inj.DP...)

	return append(out, inj.DQ...)
}

// computeInjection evaluates, for every bus i,
//
//	P_i = V_i Σ_j |Y_ij| V_j cos(θ_i − θ_j − arg Y_ij)
//	Q_i = V_i Σ_j |Y_ij| V_j sin(θ_i − θ_j − arg Y_ij)
//
// and the mismatches against the specified injections.
//
// Complexity: O(N²).
func computeInjection(yp *polarY, buses []network.ACBus) *injection {
	n := len(buses)
	inj := newInjection(n)
	v, theta := busState(buses)
	var p, q, mag, arg, a float64
	for i := 0; i < n; i++ {
		p, q = 0, 0
		for j := 0; j < n; j++ {
			if mag, arg = yp.at(i, j); mag == 0 {
				continue
			}
			a = theta[i] - theta[j] - arg
			p += mag * v[j] * math.Cos(a)
			q += mag * v[j] * math.Sin(a)
		}
		inj.P[i] = v[i] * p
		inj.Q[i] = v[i] * q
		inj.mismatch(i, buses[i])
	}

	return inj
}

// busState snapshots voltage magnitudes and angles in bus order.
func busState(buses []network.ACBus) (v, theta []float64) {
	v = make([]float64, len(buses))
	theta = make([]float64, len(buses))
	for i, b := range buses {
		v[i], theta[i] = b.Voltage(), b.Angle()
	}

	return v, theta
}
