package newton

import (
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// BuildYBus assembles the N×N complex admittance matrix.
//
// Implementation:
//   - Stage 1: allocate a zero N×N CDense.
//   - Stage 2: for every branch resolve both endpoints by bus number; skip the branch
//     when either end is missing, otherwise stamp its 2×2 block into
//     (from,from), (from,to), (to,from), (to,to).
//
// Behavior highlights:
//   - Parallel branches accumulate.
//   - A bus without incident branches keeps a zero row and column; the singularity
//     this causes surfaces in the linear solve, not here.
//
// Returns:
//   - the matrix and the number of branches skipped for unmatched endpoints.
//
// Complexity:
//   - Time O(E·N + N²), Space O(N²).
func BuildYBus(buses []network.ACBus, branches []network.ACBranch) (*matrix.CDense, int, error) {
	y, err := matrix.NewCDense(len(buses), len(buses))
	if err != nil {
		return nil, 0, newtonErrorf(opYBus, err)
	}
	var skipped int
	for _, br := range branches {
		from, to, ok := network.ResolveEndpoints(buses, br)
		if !ok {
			skipped++
			continue
		}
		if err = stampBlock(y, from, to, br.YBus()); err != nil {
			return nil, skipped, newtonErrorf(opYBus, err)
		}
	}

	return y, skipped, nil
}

// stampBlock adds a branch's 2×2 admittance block into rows from and to.
func stampBlock(y *matrix.CDense, from, to int, mini [2][2]complex128) error {
	rowF, err := y.Row(from)
	if err != nil {
		return err
	}
	rowT, err := y.Row(to)
	if err != nil {
		return err
	}
	rowF[from] += mini[0][0]
	rowF[to] += mini[0][1]
	rowT[from] += mini[1][0]
	rowT[to] += mini[1][1]

	return nil
}

// polarY caches |Y_ij| and arg(Y_ij) for the trigonometric power formulas.
type polarY struct {
	n        int
	mag, arg []float64
}

func newPolarY(y *matrix.CDense) *polarY {
	n := y.Rows()
	p := &polarY{n: n, mag: make([]float64, n*n), arg: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p.mag[i*n+j], p.arg[i*n+j] = y.Polar(i, j)
		}
	}

	return p
}

func (p *polarY) at(i, j int) (float64, float64) {
	k := i*p.n + j
	return p.mag[k], p.arg[k]
}
