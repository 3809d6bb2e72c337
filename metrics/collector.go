package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/dc"
	"github.com/katalvlaran/gridflow/newton"
)

// Outcome label values.
const (
	OutcomeConverged    = "converged"
	OutcomeNotConverged = "not_converged"
	OutcomeError        = "error"
)

// MethodDC labels DC solves; Newton solves use newton.Method.String().
const MethodDC = "dc"

// Collector owns the solver metric vectors.
type Collector struct {
	solvesTotal     *prometheus.CounterVec
	iterations      *prometheus.HistogramVec
	duration        *prometheus.HistogramVec
	skippedBranches *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector registers the solver metrics on reg. A nil reg uses
// prometheus.DefaultRegisterer; a nil logger is replaced by zap.NewNop.
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)
	c := &Collector{logger: logger.With(zap.String("component", "metrics"))}

	c.solvesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Total number of power-flow solves by outcome",
		},
		[]string{"method", "outcome"},
	)
	c.iterations = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_iterations",
			Help:      "Iterations used per solve",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 20, 50, 100},
		},
		[]string{"method"},
	)
	c.duration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Power-flow solve duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
		[]string{"method"},
	)
	c.skippedBranches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_branches_total",
			Help:      "Branches skipped because an endpoint was not in the bus list",
		},
		[]string{"method"},
	)

	c.logger.Debug("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// ObserveAC records one Newton solve.
func (c *Collector) ObserveAC(res newton.Result, err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome := OutcomeConverged
	switch {
	case err != nil:
		outcome = OutcomeError
	case !res.Converged:
		outcome = OutcomeNotConverged
	}
	c.record(res.Method.String(), outcome, res.Iterations, res.SkippedBranches, elapsed)
}

// ObserveDC records one DC solve.
func (c *Collector) ObserveDC(res dc.Result, err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome, iterations := OutcomeConverged, 1
	if err != nil {
		outcome, iterations = OutcomeError, 0
	}
	c.record(MethodDC, outcome, iterations, res.SkippedBranches, elapsed)
}

func (c *Collector) record(method, outcome string, iterations, skipped int, elapsed time.Duration) {
	c.solvesTotal.WithLabelValues(method, outcome).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
	if iterations > 0 {
		c.iterations.WithLabelValues(method).Observe(float64(iterations))
	}
	if skipped > 0 {
		c.skippedBranches.WithLabelValues(method).Add(float64(skipped))
	}
}
