package newton

import (
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// full rebuilds the 2N×2N Jacobian from the current bus state every iteration.
type full struct {
	opts  *Options
	yp    *polarY
	buses []network.ACBus
	jac   *matrix.Dense // unpinned Jacobian of the last evaluation
}

func (f *full) prepare(_ *matrix.CDense, yp *polarY, buses []network.ACBus) error {
	f.yp, f.buses = yp, buses

	return nil
}

func (f *full) evaluate() (*injection, error) {
	jac, inj, err := fullJacobian(f.yp, f.buses)
	if err != nil {
		return nil, err
	}
	f.jac = jac

	return inj, nil
}

// step pins a copy of the Jacobian, so the stored matrix stays unpinned.
func (f *full) step(inj *injection) ([]float64, []float64, error) {
	work := f.jac.Copy()
	rhs := inj.rhs()
	if err := enforceFull(work, rhs, f.buses); err != nil {
		return nil, nil, err
	}
	delta, err := factorSolve(work, rhs, f.opts.PivotTolerance)
	if err != nil {
		return nil, nil, err
	}
	n := len(f.buses)

	return delta[:n], delta[n:], nil
}

func (f *full) snapshot() *matrix.Dense { return f.jac }
