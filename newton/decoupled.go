package newton

import (
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// decoupled solves the θ and V subproblems independently with quadrants built
// once from Y. Each iteration pins fresh copies so AVR releases take effect.
type decoupled struct {
	opts   *Options
	yp     *polarY
	buses  []network.ACBus
	j1, j4 *matrix.Dense
}

func (d *decoupled) prepare(y *matrix.CDense, yp *polarY, buses []network.ACBus) error {
	j1, j4, err := decoupledQuadrants(y)
	if err != nil {
		return err
	}
	d.yp, d.buses, d.j1, d.j4 = yp, buses, j1, j4

	return nil
}

func (d *decoupled) evaluate() (*injection, error) {
	return computeInjection(d.yp, d.buses), nil
}

func (d *decoupled) step(inj *injection) ([]float64, []float64, error) {
	w1, w4 := d.j1.Copy(), d.j4.Copy()
	dp := append([]float64(nil), inj.DP...)
	dq := append([]float64(nil), inj.DQ...)
	if err := enforceDecoupled(w1, w4, dp, dq, d.buses); err != nil {
		return nil, nil, err
	}
	dTheta, err := factorSolve(w1, dp, d.opts.PivotTolerance)
	if err != nil {
		return nil, nil, err
	}
	dV, err := factorSolve(w4, dq, d.opts.PivotTolerance)
	if err != nil {
		return nil, nil, err
	}

	return dTheta, dV, nil
}

// snapshot is the unpinned V quadrant.
func (d *decoupled) snapshot() *matrix.Dense { return d.j4 }

func factorSolve(m *matrix.Dense, b []float64, tol float64) ([]float64, error) {
	lu, err := matrix.Factorize(m, tol)
	if err != nil {
		return nil, err
	}

	return lu.Solve(b)
}
