package algorithms

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vlsi-lab/floorplanner/pkg/fitness"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// EvaluatePopulation scores every chromosome. In parallel mode each
// chromosome is scored on one of runtime.NumCPU() workers and written to its
// own slot; the call returns once all workers have joined. The first
// evaluation error aborts the remaining work.
func EvaluatePopulation(ctx context.Context, evaluator *fitness.Evaluator, chromosomes []framework.Chromosome, parallel bool) ([]*Individual, error) {
	population := make([]*Individual, len(chromosomes))

	if !parallel {
		for i, c := range chromosomes {
			res, err := evaluator.Evaluate(c)
			if err != nil {
				return nil, err
			}
			population[i] = &Individual{Chromosome: c, Result: res}
		}
		return population, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, c := range chromosomes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := evaluator.Evaluate(c)
			if err != nil {
				return err
			}
			population[i] = &Individual{Chromosome: c, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return population, nil
}
