// Package batch solves independent network snapshots on a bounded worker group.
//
// What:
//
//	A Runner takes a slice of Jobs, each owning one AC or DC snapshot, and solves
//	them concurrently with at most Options.Workers solves in flight. Outcomes are
//	returned in input order regardless of completion order.
//
// Usage:
//
//	r, err := batch.NewRunner(batch.WithWorkers(4), batch.WithFailFast(true))
//	outs, err := r.Run(ctx, []batch.Job{
//		batch.NewACJob(morning, newton.WithMethod(newton.DecoupledNewton)),
//		batch.NewDCJob(evening),
//	})
//
// Concurrency:
//
//	Individual solves are synchronous and share nothing. A snapshot must not be
//	handed to two jobs: the AC solver writes voltages and outputs back into its
//	buses. This is not checked.
//
//	With FailFast the first job error cancels the group; jobs that have not
//	started yet report ErrCancelled. A solve already in flight runs to completion.
package batch
