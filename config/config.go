package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/batch"
	"github.com/katalvlaran/gridflow/dc"
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/metrics"
	"github.com/katalvlaran/gridflow/newton"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Solver method names accepted in SolverConfig.Method.
const (
	MethodDC        = "dc"
	MethodFull      = "full"
	MethodDecoupled = "decoupled"
)

// Config is the complete gridflow configuration.
type Config struct {
	Solver  SolverConfig  `yaml:"solver" env:"SOLVER"`
	Batch   BatchConfig   `yaml:"batch" env:"BATCH"`
	Log     LogConfig     `yaml:"log" env:"LOG"`
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`
}

// SolverConfig selects and tunes the power-flow solver.
type SolverConfig struct {
	// Method: dc, full or decoupled.
	Method           string  `yaml:"method" env:"METHOD"`
	MaxIterations    int     `yaml:"max_iterations" env:"MAX_ITERATIONS"`
	AdjustError      float64 `yaml:"adjust_error" env:"ADJUST_ERROR"`
	ConvergeError    float64 `yaml:"converge_error" env:"CONVERGE_ERROR"`
	EnforceGenLimits bool    `yaml:"enforce_gen_limits" env:"ENFORCE_GEN_LIMITS"`
	PivotTolerance   float64 `yaml:"pivot_tolerance" env:"PIVOT_TOLERANCE"`
	Verbose          bool    `yaml:"verbose" env:"VERBOSE"`
}

// BatchConfig sizes the batch runner.
type BatchConfig struct {
	Workers  int  `yaml:"workers" env:"WORKERS"`
	FailFast bool `yaml:"fail_fast" env:"FAIL_FAST"`
}

// LogConfig configures the zap logger built by NewLogger.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format: json or console.
	Format      string   `yaml:"format" env:"FORMAT"`
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// DefaultConfig mirrors newton.DefaultOptions, dc.DefaultOptions and batch.DefaultOptions.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Method:           MethodFull,
			MaxIterations:    newton.DefaultMaxIterations,
			AdjustError:      newton.DefaultAdjustError,
			ConvergeError:    newton.DefaultConvergeError,
			EnforceGenLimits: true,
			PivotTolerance:   matrix.DefaultPivotTolerance,
		},
		Batch: BatchConfig{Workers: batch.DefaultWorkers},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			OutputPaths: []string{"stdout"},
		},
		Metrics: MetricsConfig{Enabled: true, Namespace: "gridflow"},
	}
}

// Validate checks every section and joins all violations.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Solver.Method {
	case MethodDC, MethodFull, MethodDecoupled:
	default:
		bad("solver.method %q (want dc, full or decoupled)", c.Solver.Method)
	}
	if c.Solver.MaxIterations <= 0 {
		bad("solver.max_iterations must be positive (%d)", c.Solver.MaxIterations)
	}
	tolerances := []struct {
		name string
		v    float64
	}{
		{"solver.adjust_error", c.Solver.AdjustError},
		{"solver.converge_error", c.Solver.ConvergeError},
		{"solver.pivot_tolerance", c.Solver.PivotTolerance},
	}
	for _, tol := range tolerances {
		if math.IsNaN(tol.v) || math.IsInf(tol.v, 0) || tol.v < 0 {
			bad("%s must be finite and >= 0 (%g)", tol.name, tol.v)
		}
	}
	if c.Batch.Workers <= 0 {
		bad("batch.workers must be positive (%d)", c.Batch.Workers)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		bad("log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		bad("log.format %q (want json or console)", c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		bad("metrics.namespace is required when metrics are enabled")
	}

	return errors.Join(errs...)
}

// IsDC reports whether the configured method is the DC solver.
func (c *Config) IsDC() bool { return c.Solver.Method == MethodDC }

// NewtonOptions converts the solver section into newton options.
// A dc method falls back to full Newton.
func (c *Config) NewtonOptions(logger *zap.Logger) []newton.Option {
	m := newton.FullNewton
	if c.Solver.Method == MethodDecoupled {
		m = newton.DecoupledNewton
	}

	return []newton.Option{
		newton.WithMethod(m),
		newton.WithMaxIterations(c.Solver.MaxIterations),
		newton.WithAdjustError(c.Solver.AdjustError),
		newton.WithConvergeError(c.Solver.ConvergeError),
		newton.WithEnforceGenLimits(c.Solver.EnforceGenLimits),
		newton.WithPivotTolerance(c.Solver.PivotTolerance),
		newton.WithVerbose(c.Solver.Verbose),
		newton.WithLogger(logger),
	}
}

// DCOptions converts the solver section into dc options.
func (c *Config) DCOptions(logger *zap.Logger) []dc.Option {
	return []dc.Option{
		dc.WithPivotTolerance(c.Solver.PivotTolerance),
		dc.WithVerbose(c.Solver.Verbose),
		dc.WithLogger(logger),
	}
}

// Collector registers the solver metrics on reg under Metrics.Namespace.
// It returns nil when metrics are disabled; a nil collector records nothing.
func (c *Config) Collector(reg prometheus.Registerer, logger *zap.Logger) *metrics.Collector {
	if !c.Metrics.Enabled {
		return nil
	}

	return metrics.NewCollector(c.Metrics.Namespace, reg, logger)
}

// BatchOptions converts the batch section into runner options. Pass the result of
// Collector to record per-job metrics.
func (c *Config) BatchOptions(logger *zap.Logger, collector *metrics.Collector) []batch.Option {
	return []batch.Option{
		batch.WithWorkers(c.Batch.Workers),
		batch.WithFailFast(c.Batch.FailFast),
		batch.WithLogger(logger),
		batch.WithMetrics(collector),
	}
}
