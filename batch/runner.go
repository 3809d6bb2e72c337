package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridflow/dc"
	"github.com/katalvlaran/gridflow/newton"
)

// Runner solves batches of jobs. It is safe to call Run concurrently.
type Runner struct {
	opts Options
}

// NewRunner applies opts over DefaultOptions.
func NewRunner(opts ...Option) (*Runner, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Runner{opts: o}, nil
}

// Run solves jobs with at most Workers in flight and returns one Outcome per job
// in input order. jobs is only read: a job without an ID gets a generated one in
// its Outcome.
//
// Without FailFast job errors stay in their Outcome and Run returns nil unless ctx
// ends. With FailFast the first job error cancels the remaining jobs and is returned
// wrapped with its job ID. A cancelled ctx yields ctx.Err().
//
// Implementation:
//   - Stage 1: derive a group context; errgroup.SetLimit bounds the goroutines.
//   - Stage 2: each goroutine checks the group context, solves, records the Outcome
//     at its own index and reports the error to the group only under FailFast.
//   - Stage 3: Wait, then log the aggregate.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	batchID := uuid.NewString()
	log := r.opts.Logger.With(zap.String("component", "batch"), zap.String("batch_id", batchID))

	out := make([]Outcome, len(jobs))
	if len(jobs) == 0 {
		return out, ctx.Err()
	}
	log.Info("batch started", zap.Int("jobs", len(jobs)), zap.Int("workers", r.opts.Workers), zap.Bool("fail_fast", r.opts.FailFast))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	start := time.Now()

	for i := range jobs {
		job := jobs[i]
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		out[i].JobID = job.ID
		if gctx.Err() != nil {
			out[i].Err = fmt.Errorf("%w: %w", ErrCancelled, gctx.Err())
			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				out[i].Err = fmt.Errorf("%w: %w", ErrCancelled, gctx.Err())
				return nil
			}
			out[i] = r.solve(job, log)
			if out[i].Err != nil && r.opts.FailFast {
				return fmt.Errorf("%s: job %s: %w", opRun, job.ID, out[i].Err)
			}
			return nil
		})
	}
	groupErr := g.Wait()

	var failed, cancelled, converged int
	for _, o := range out {
		switch {
		case errors.Is(o.Err, ErrCancelled):
			cancelled++
		case o.Err != nil:
			failed++
		case o.Converged():
			converged++
		}
	}
	log.Info("batch finished",
		zap.Int("converged", converged),
		zap.Int("failed", failed),
		zap.Int("cancelled", cancelled),
		zap.Duration("elapsed", time.Since(start)),
	)

	if groupErr != nil {
		return out, groupErr
	}

	return out, ctx.Err()
}

func (r *Runner) solve(job Job, log *zap.Logger) Outcome {
	o := Outcome{JobID: job.ID}
	jlog := log.With(zap.String("job_id", job.ID))

	start := time.Now()
	switch {
	case job.AC != nil && job.DC == nil:
		res, err := newton.Solve(job.AC, job.NewtonOps...)
		o.Elapsed = time.Since(start)
		o.AC, o.Err = &res, err
		r.opts.Metrics.ObserveAC(res, err, o.Elapsed)
		jlog = jlog.With(zap.String("method", res.Method.String()), zap.String("run_id", res.RunID))

	case job.DC != nil && job.AC == nil:
		res, err := dc.Solve(job.DC, job.DCOps...)
		o.Elapsed = time.Since(start)
		o.DC, o.Err = &res, err
		r.opts.Metrics.ObserveDC(res, err, o.Elapsed)
		jlog = jlog.With(zap.String("method", "dc"), zap.String("run_id", res.RunID))

	default:
		o.Err = fmt.Errorf("%s: job %s: %w", opRun, job.ID, ErrInvalidJob)
	}

	if o.Err != nil {
		jlog.Warn("job failed", zap.Error(o.Err))
		return o
	}
	jlog.Debug("job finished", zap.Bool("converged", o.Converged()), zap.Duration("elapsed", o.Elapsed))

	return o
}
