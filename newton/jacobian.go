package newton

import (
	"math"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// fullJacobian computes the injections and the 2N×2N Jacobian in one pass.
//
//	| ∂P/∂θ  ∂P/∂V |     rows 0..N-1   : P equations
//	| ∂Q/∂θ  ∂Q/∂V |     rows N..2N-1  : Q equations
//
// With a_ij = θ_i − θ_j − arg Y_ij, off-diagonal entries (j ≠ i):
//
//	∂P_i/∂θ_j =  V_i |Y_ij| V_j sin a_ij     ∂P_i/∂V_j = V_i |Y_ij| cos a_ij
//	∂Q_i/∂θ_j = −V_i |Y_ij| V_j cos a_ij     ∂Q_i/∂V_j = V_i |Y_ij| sin a_ij
//
// Diagonal entries:
//
//	∂P_i/∂θ_i = −V_i Σ_{k≠i} |Y_ik| V_k sin a_ik
//	∂P_i/∂V_i =  Σ_k |Y_ik| V_k cos a_ik + V_i |Y_ii| cos arg Y_ii
//	∂Q_i/∂θ_i =  V_i Σ_{k≠i} |Y_ik| V_k cos a_ik
//	∂Q_i/∂V_i =  Σ_k |Y_ik| V_k sin a_ik − V_i |Y_ii| sin arg Y_ii
//
// Complexity: Time O(N²), Space O(N²).
func fullJacobian(yp *polarY, buses []network.ACBus) (*matrix.Dense, *injection, error) {
	n := len(buses)
	jac, err := matrix.NewDense(2*n, 2*n)
	if err != nil {
		return nil, nil, newtonErrorf(opJacobian, err)
	}
	inj := newInjection(n)
	v, theta := busState(buses)

	var (
		rowP, rowQ   []float64
		sumP, sumQ   float64 // Σ_k |Y_ik| V_k cos/sin, all k
		offP, offQ   float64 // Σ_{k≠i} |Y_ik| V_k sin/cos
		mag, arg, a  float64
		sinA, cosA   float64
		magII, argII float64
	)
	for i := 0; i < n; i++ {
		rowP, _ = jac.Row(i)
		rowQ, _ = jac.Row(i + n)
		sumP, sumQ, offP, offQ = 0, 0, 0, 0
		for j := 0; j < n; j++ {
			if mag, arg = yp.at(i, j); mag == 0 {
				continue
			}
			a = theta[i] - theta[j] - arg
			sinA, cosA = math.Sincos(a)
			sumP += mag * v[j] * cosA
			sumQ += mag * v[j] * sinA
			if i == j {
				continue
			}
			rowP[j] = v[i] * mag * v[j] * sinA
			rowP[j+n] = v[i] * mag * cosA
			rowQ[j] = -v[i] * mag * v[j] * cosA
			rowQ[j+n] = v[i] * mag * sinA
			offP += mag * v[j] * sinA
			offQ += mag * v[j] * cosA
		}
		magII, argII = yp.at(i, i)
		rowP[i] = -v[i] * offP
		rowP[i+n] = sumP + v[i]*magII*math.Cos(argII)
		rowQ[i] = v[i] * offQ
		rowQ[i+n] = sumQ - v[i]*magII*math.Sin(argII)

		inj.P[i] = v[i] * sumP
		inj.Q[i] = v[i] * sumQ
		inj.mismatch(i, buses[i])
	}

	return jac, inj, nil
}

// decoupledQuadrants builds the θ (J1) and V (J4) quadrants from Y alone:
//
//	J1_ij = 1 / Im(1/Y_ij),  J4_ij = −Im(Y_ij)     for i ≠ j, Y_ij ≠ 0
//	J1_ii = −Σ_{j≠i} J1_ij,  J4_ii = −Σ_{j≠i} J4_ij
//
// Shunt and charging terms on the diagonal of Y are ignored.
//
// Complexity: Time O(N²), Space O(N²).
func decoupledQuadrants(y *matrix.CDense) (j1, j4 *matrix.Dense, err error) {
	n := y.Rows()
	if j1, err = matrix.NewDense(n, n); err != nil {
		return nil, nil, newtonErrorf(opJacobian, err)
	}
	// J4 starts from Im(Y): off-diagonals are negated, the diagonal is rebuilt.
	j4 = y.Imag()
	var yrow []complex128
	var row1, row4 []float64
	for i := 0; i < n; i++ {
		if yrow, err = y.Row(i); err != nil {
			return nil, nil, newtonErrorf(opJacobian, err)
		}
		if row1, err = j1.Row(i); err != nil {
			return nil, nil, newtonErrorf(opJacobian, err)
		}
		if row4, err = j4.Row(i); err != nil {
			return nil, nil, newtonErrorf(opJacobian, err)
		}
		row4[i] = 0
		for j, yij := range yrow {
			if i == j || yij == 0 {
				continue
			}
			row1[j] = 1 / imag(1/yij)
			row4[j] = -row4[j]
			row1[i] -= row1[j]
			row4[i] -= row4[j]
		}
	}

	return j1, j4, nil
}
