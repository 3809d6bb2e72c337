package batch_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridflow/batch"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/newton"
)

// ExampleRunner_Run solves three load levels of the same feeder, one snapshot each.
func ExampleRunner_Run() {
	var jobs []batch.Job
	for _, p := range []float64{-0.2, -0.5, -0.8} {
		sys := network.NewSystem(
			[]network.ACBus{network.NewSlackBus(1, 1.0), network.NewLoadBus(2, p, -0.2)},
			[]network.ACBranch{network.NewLine(1, 2, 0.01, 0.1)},
		)
		jobs = append(jobs, batch.NewACJob(sys, newton.WithMethod(newton.FullNewton)))
	}

	r, err := batch.NewRunner(batch.WithWorkers(2))
	if err != nil {
		panic(err)
	}
	outs, err := r.Run(context.Background(), jobs)
	if err != nil {
		panic(err)
	}
	for _, o := range outs {
		fmt.Printf("converged=%v iterations=%d\n", o.Converged(), o.AC.Iterations)
	}
	// Output:
	// converged=true iterations=3
	// converged=true iterations=3
	// converged=true iterations=4
}
