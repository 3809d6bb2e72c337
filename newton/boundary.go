package newton

import (
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// pin decouples equation i of m and zeroes its right-hand side, so the update of
// that state is exactly zero.
func pin(m *matrix.Dense, rhs []float64, i int) error {
	rhs[i] = 0

	return m.Pin(i, Stiffness)
}

// enforceFull pins the 2N system in place.
//
// Rules:
//   - slack bus: θ equation i and V equation i+N;
//   - regulating (AVR) generation bus: V equation i+N only;
//   - load bus and released generator: untouched.
//
// Complexity: O(k·N) for k pinned equations.
func enforceFull(jac *matrix.Dense, rhs []float64, buses []network.ACBus) error {
	n := len(buses)
	for i, b := range buses {
		switch {
		case b.IsSlack():
			if err := pin(jac, rhs, i); err != nil {
				return err
			}
			if err := pin(jac, rhs, i+n); err != nil {
				return err
			}
		case b.IsGeneration() && b.IsAVR():
			if err := pin(jac, rhs, i+n); err != nil {
				return err
			}
		}
	}

	return nil
}

// enforceDecoupled applies the same rules to the θ quadrant j1 and the V quadrant j4.
func enforceDecoupled(j1, j4 *matrix.Dense, dp, dq []float64, buses []network.ACBus) error {
	for i, b := range buses {
		switch {
		case b.IsSlack():
			if err := pin(j1, dp, i); err != nil {
				return err
			}
			if err := pin(j4, dq, i); err != nil {
				return err
			}
		case b.IsGeneration() && b.IsAVR():
			if err := pin(j4, dq, i); err != nil {
				return err
			}
		}
	}

	return nil
}
