package newton

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// quadrantWatch wraps the decoupled strategy and checks before every step that the
// quadrants stored by prepare are still the same matrices with the same entries.
type quadrantWatch struct {
	*decoupled
	t   *testing.T
	gen *network.GeneratorBus

	prepares, steps, stepsAfterRelease int
	j1, j4                             *matrix.Dense
	want1, want4                       *matrix.Dense
}

func (w *quadrantWatch) prepare(y *matrix.CDense, yp *polarY, buses []network.ACBus) error {
	w.prepares++
	if err := w.decoupled.prepare(y, yp, buses); err != nil {
		return err
	}
	w.j1, w.j4 = w.decoupled.j1, w.decoupled.j4
	w.want1, w.want4 = w.j1.Copy(), w.j4.Copy()

	return nil
}

func (w *quadrantWatch) step(inj *injection) ([]float64, []float64, error) {
	w.steps++
	if w.gen.Released() {
		w.stepsAfterRelease++
	}
	w.requireUnchanged()

	return w.decoupled.step(inj)
}

func (w *quadrantWatch) requireUnchanged() {
	w.t.Helper()
	require.Same(w.t, w.j1, w.decoupled.j1, "J1 rebuilt")
	require.Same(w.t, w.j4, w.decoupled.j4, "J4 rebuilt")
	require.Equal(w.t, w.want1, w.decoupled.j1, "J1 modified")
	require.Equal(w.t, w.want4, w.decoupled.j4, "J4 modified")
}

// TestDecoupled_QuadrantsBuiltOncePerSolve drives a solve in which the generator is
// released part-way; the quadrants must survive every iteration untouched.
func TestDecoupled_QuadrantsBuiltOncePerSolve(t *testing.T) {
	gen := network.NewGeneratorBus(2, 0.3, 1.05, -1.0, 0.05)
	sys := network.NewSystem(
		[]network.ACBus{network.NewSlackBus(1, 1.0), gen, network.NewLoadBus(3, -0.8, -0.4)},
		[]network.ACBranch{
			network.NewLine(1, 2, 0.01, 0.1),
			network.NewLine(2, 3, 0.01, 0.1),
			network.NewLine(1, 3, 0.02, 0.15),
		},
	)
	w := &quadrantWatch{t: t, gen: gen}
	mk := func(o *Options) strategy {
		w.decoupled = &decoupled{opts: o}
		return w
	}

	o := DefaultOptions()
	o.Method, o.MaxIterations = DecoupledNewton, 60
	res, err := run(sys, o, mk)
	require.NoError(t, err)
	require.True(t, res.Converged)

	require.Equal(t, 1, w.prepares)
	require.Equal(t, res.Iterations-1, w.steps)
	require.True(t, gen.Released())
	require.Positive(t, w.stepsAfterRelease)
	w.requireUnchanged()

	// The sensitivity snapshot is taken from the same V quadrant.
	m := res.Sensitivity.Map()
	for pos, bus := range sys.Buses {
		want, _ := w.want4.At(pos, pos)
		require.Equal(t, want, m[bus.Number()])
	}
}
