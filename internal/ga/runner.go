package ga

import (
	"context"
	"math"

	"github.com/layoutforge/qmkevolve/internal/layout"
)

// StatsCallback is invoked after each generation with its index and the
// evaluated generation, so the driver can render progress without the
// engine depending on a display package.
type StatsCallback func(generation int, gen EvaluatedGen)

// Runner drives the generation pipeline: evaluate, speciate/niche, select
// survivors, reproduce, repeat, following the teacher's own Run loop
// structure (convergence tracking, context cancellation, callback).
type Runner struct {
	Cfg     Cfg
	Eval    Evaluator
	Workers int
}

// Run executes up to Cfg.Runs generations (or until convergence, when
// Cfg.ConvergenceStops > 0), starting from initial. ctx is checked between
// generations; an in-flight generation always completes before Run returns,
// so cancellation never discards partial work.
func (r Runner) Run(ctx context.Context, initial []layout.Layout, callback StatsCallback) (Member, int) {
	gen := FromStates(initial).Evaluate(r.Cfg, r.Eval, r.Workers)

	best := gen.Best()

	lastBest := math.Inf(-1)
	convergenceCount := 0

	maxGens := r.Cfg.Runs
	if maxGens <= 0 && r.Cfg.ConvergenceStops > 0 {
		maxGens = int(^uint(0) >> 1)
	}

	for generation := 0; generation < maxGens; generation++ {
		if gen.Best().Fitness > best.Fitness {
			best = gen.Best()
		}

		if callback != nil {
			callback(generation, gen)
		}

		if r.Cfg.ConvergenceStops > 0 {
			change := math.Abs(gen.Best().Fitness - lastBest)
			if !math.IsInf(lastBest, -1) && change <= r.Cfg.ConvergenceTolerance {
				convergenceCount++
				if convergenceCount >= r.Cfg.ConvergenceStops {
					return best, generation
				}
			} else {
				convergenceCount = 0
			}

			lastBest = gen.Best().Fitness
		}

		select {
		case <-ctx.Done():
			return best, generation
		default:
		}

		next := gen.NextGen(r.Cfg, r.Eval, r.Workers)
		gen = next.Evaluate(r.Cfg, r.Eval, r.Workers)
	}

	if gen.Best().Fitness > best.Fitness {
		best = gen.Best()
	}

	return best, maxGens
}
