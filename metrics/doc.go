// Package metrics records solver outcomes as Prometheus metrics.
//
// Exported series (namespace configurable, "gridflow" by default):
//
//	<ns>_solves_total{method,outcome}        counter; outcome is converged, not_converged or error
//	<ns>_solve_iterations{method}            histogram of Newton iterations (DC observes 1)
//	<ns>_solve_duration_seconds{method}      histogram of wall-clock solve time
//	<ns>_skipped_branches_total{method}      counter of branches dropped for unmatched endpoints
//
// A nil *Collector is valid and records nothing.
package metrics
