// Package ga implements the generation pipeline the driver runs: parallel
// fitness evaluation, speciation, shared-fitness niching, survival, and
// reproduction. It is generic over an Evaluator so the same engine that once
// drove the teacher's rune-genome GA now drives the layout genome.
package ga

import "github.com/layoutforge/qmkevolve/internal/layout"

// Evaluator is the trait the engine drives. internal/layouteval.Evaluator
// implements it for layout.Layout.
type Evaluator interface {
	Fitness(l *layout.Layout) float64
	Distance(a, b *layout.Layout) float64
	Crossover(a, b *layout.Layout) (layout.Layout, layout.Layout)
	Mutate(l *layout.Layout, rate float64) layout.Layout
}

// Member is one scored, speciated individual. Species is -1 until speciation
// runs.
type Member struct {
	State   layout.Layout
	Fitness float64
	Species int

	// CrossoverRate/MutationRate are the per-member adaptive operator rates
	// used when Cfg.CrossoverMode/MutationMode is Adaptive. They are ignored under
	// the Fixed variants.
	CrossoverRate float64
	MutationRate  float64
}

// Clone returns a deep copy of m.
func (m Member) Clone() Member {
	c := m
	c.State = m.State.Clone()

	return c
}
