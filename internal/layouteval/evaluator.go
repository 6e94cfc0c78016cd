// Package layouteval wraps the path finder into the fitness, distance,
// crossover, and mutation operators the GA engine drives. It is the layout
// domain's equivalent of the teacher's pkg/fitness evaluator, generalised
// from a fixed 26-key QWERTY genome to the full layered Layout genome.
package layouteval

import (
	"math/rand/v2"

	"github.com/layoutforge/qmkevolve/internal/firmware"
	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/layoutforge/qmkevolve/internal/pathfinder"
)

// Evaluator scores candidate layouts against a fixed corpus and board
// description. It holds no per-call mutable state, so a single Evaluator
// is safe to share read-only across the GA engine's worker pool.
type Evaluator struct {
	Cfg    layout.LayoutCfg
	Corpus []kc.PhysEv
	Cnst   layout.Constants
}

// New builds an Evaluator over cfg/corpus/cnst.
func New(cfg layout.LayoutCfg, corpus []kc.PhysEv, cnst layout.Constants) *Evaluator {
	return &Evaluator{Cfg: cfg, Corpus: corpus, Cnst: cnst}
}

// Fitness runs cnst.BatchNum rounds, each over a random contiguous corpus
// slice, and averages the per-round score. A round scores 100 points per
// kev reproduced; a round that fully reproduces its slice additionally
// rewards low cost and a structurally simple layout.
func (e *Evaluator) Fitness(l *layout.Layout) float64 {
	if e.Cnst.BatchNum <= 0 {
		return 0
	}

	blockSize := e.Cnst.BatchSize
	if blockSize <= 0 || blockSize > len(e.Corpus) {
		blockSize = len(e.Corpus)
	}

	total := 0.0

	for round := 0; round < e.Cnst.BatchNum; round++ {
		block := e.randomBlock(blockSize)
		kevs := firmware.ComputeKevs(block, e.Cnst)

		res := pathfinder.Find(e.Cfg, kevs, e.Cnst, l)

		total += 100 * float64(res.KevsFound)

		if res.KevsFound == len(kevs) {
			total += 100*float64(len(kevs)) - float64(res.Cost)
			total += 10_000 - float64(layout.LayoutCost(*l))
		}
	}

	return total / float64(e.Cnst.BatchNum)
}

func (e *Evaluator) randomBlock(blockSize int) []kc.PhysEv {
	if blockSize >= len(e.Corpus) {
		return e.Corpus
	}

	start := rand.IntN(len(e.Corpus) - blockSize + 1)

	return e.Corpus[start : start+blockSize]
}

// Distance is the structural distance between two layouts used by
// speciation and niching.
func (e *Evaluator) Distance(a, b *layout.Layout) float64 {
	return float64(layout.Distance(*a, *b))
}

// Crossover produces two normalised children from p1/p2. See crossover.go.
func (e *Evaluator) Crossover(p1, p2 *layout.Layout) (layout.Layout, layout.Layout) {
	return Crossover(*p1, *p2, e.Cfg, e.Cnst)
}

// Mutate returns a mutated, normalised copy of l, using rate as the
// effective per-key mutation strength. See mutation.go.
func (e *Evaluator) Mutate(l *layout.Layout, rate float64) layout.Layout {
	return Mutate(*l, e.Cfg, e.Cnst, rate)
}
