// Package config loads solver, batch, logging and metrics settings.
//
// Precedence: DefaultConfig → YAML file → GRIDFLOW_* environment variables → Validate.
// Environment keys are built from the `env` struct tags joined by "_", for example
// GRIDFLOW_SOLVER_MAX_ITERATIONS or GRIDFLOW_LOG_OUTPUT_PATHS (comma separated).
//
//	cfg, err := config.NewLoader().WithConfigPath("gridflow.yaml").Load()
//	if err != nil {
//		return err
//	}
//	logger, err := config.NewLogger(cfg.Log)
//	res, err := newton.Solve(sys, cfg.NewtonOptions(logger)...)
//
//	runner, err := batch.NewRunner(cfg.BatchOptions(logger, cfg.Collector(prometheus.DefaultRegisterer, logger))...)
package config
