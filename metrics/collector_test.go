package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/dc"
	"github.com/katalvlaran/gridflow/metrics"
	"github.com/katalvlaran/gridflow/newton"
)

func newCollector(t *testing.T) (*metrics.Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return metrics.NewCollector("test", reg, nil), reg
}

func TestObserveAC_Outcomes(t *testing.T) {
	c, reg := newCollector(t)

	c.ObserveAC(newton.Result{Method: newton.FullNewton, Converged: true, Iterations: 3}, nil, time.Millisecond)
	c.ObserveAC(newton.Result{Method: newton.FullNewton, Iterations: 20, SkippedBranches: 2}, nil, time.Millisecond)
	c.ObserveAC(newton.Result{Method: newton.DecoupledNewton, Iterations: 1}, assert.AnError, time.Millisecond)

	full := newton.FullNewton.String()
	decoupled := newton.DecoupledNewton.String()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 4)

	solves := collectCounter(t, reg, "test_solves_total")
	assert.Equal(t, 1.0, solves[full+"/"+metrics.OutcomeConverged])
	assert.Equal(t, 1.0, solves[full+"/"+metrics.OutcomeNotConverged])
	assert.Equal(t, 1.0, solves[decoupled+"/"+metrics.OutcomeError])

	skipped := collectCounter(t, reg, "test_skipped_branches_total")
	assert.Equal(t, 2.0, skipped[full])
	assert.NotContains(t, skipped, decoupled)
}

func TestObserveDC(t *testing.T) {
	c, reg := newCollector(t)

	c.ObserveDC(dc.Result{Converged: true, SkippedBranches: 1}, nil, time.Microsecond)
	c.ObserveDC(dc.Result{}, assert.AnError, time.Microsecond)

	solves := collectCounter(t, reg, "test_solves_total")
	assert.Equal(t, 1.0, solves[metrics.MethodDC+"/"+metrics.OutcomeConverged])
	assert.Equal(t, 1.0, solves[metrics.MethodDC+"/"+metrics.OutcomeError])
	assert.Equal(t, 1.0, collectCounter(t, reg, "test_skipped_branches_total")[metrics.MethodDC])

	// Failed DC solves do not observe an iteration.
	assert.Equal(t, uint64(1), histogramCount(t, reg, "test_solve_iterations"))
	assert.Equal(t, uint64(2), histogramCount(t, reg, "test_solve_duration_seconds"))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *metrics.Collector
	assert.NotPanics(t, func() {
		c.ObserveAC(newton.Result{}, nil, time.Second)
		c.ObserveDC(dc.Result{}, nil, time.Second)
	})
}

func TestNewCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewCollector("dup", reg, nil)
	assert.Panics(t, func() { metrics.NewCollector("dup", reg, nil) })
}

func TestCollectAndCount(t *testing.T) {
	c, reg := newCollector(t)
	c.ObserveAC(newton.Result{Method: newton.FullNewton, Converged: true, Iterations: 2}, nil, time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "test_solves_total", "test_solve_iterations")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// collectCounter maps "label/label" to the counter value of every series in name.
func collectCounter(t *testing.T, reg *prometheus.Registry, name string) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			key := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					key += "/"
				}
				key += lp.GetValue()
			}
			out[key] = m.GetCounter().GetValue()
		}
	}

	return out
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	var n uint64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			n += m.GetHistogram().GetSampleCount()
		}
	}

	return n
}
