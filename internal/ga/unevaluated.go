package ga

import (
	"runtime"
	"sort"
	"sync"

	"github.com/layoutforge/qmkevolve/internal/layout"
)

// UnevaluatedGen is a generation whose members have states but no fitness or
// species assignment yet.
type UnevaluatedGen struct {
	mems []Member
}

// FromStates builds an UnevaluatedGen from freshly bred or seeded layouts,
// assigning the default adaptive rates from DefaultCfg.
func FromStates(states []layout.Layout) UnevaluatedGen {
	mems := make([]Member, len(states))
	for i, s := range states {
		mems[i] = Member{State: s, Species: -1, CrossoverRate: 0.7, MutationRate: 0.1}
	}

	return UnevaluatedGen{mems: mems}
}

// FromMembers builds an UnevaluatedGen directly from already-constructed
// members, preserving their adaptive rates across a reproduction step.
func FromMembers(mems []Member) UnevaluatedGen {
	return UnevaluatedGen{mems: mems}
}

// Evaluate scores every member's fitness in parallel, then optionally
// speciates and applies shared-fitness niching, per Cfg.
func (g UnevaluatedGen) Evaluate(cfg Cfg, eval Evaluator, workers int) EvaluatedGen {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	n := len(g.mems)
	fitnesses := make([]float64, n)

	parallelFor(n, workers, func(i int) {
		state := g.mems[i].State
		fitnesses[i] = eval.Fitness(&state)
	})

	var dists DistCache

	species := make([]int, n)

	// radius mirrors the source's species_radius field: it starts at 1.0 and
	// is only overwritten when speciation actually runs, so niching has a
	// sensible value to fall back on even without an active Species target.
	radius := 1.0

	if cfg.Species == TargetNumber && n > 0 {
		dists = newDistCache(eval, g.mems, workers)
		species, radius = speciate(dists, n, cfg.TargetSpecies)
	}

	if cfg.Niching == SharedFitness && n > 0 {
		if dists.empty() {
			dists = newDistCache(eval, g.mems, workers)
		}

		fitnesses = sharedFitness(fitnesses, dists, radius)
	}

	out := make([]Member, n)
	for i := range out {
		out[i] = g.mems[i]
		out[i].Fitness = fitnesses[i]
		out[i].Species = species[i]
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Fitness > out[j].Fitness })

	return EvaluatedGen{mems: out, dists: dists}
}

// parallelFor runs fn(i) for i in [0,n) across workers goroutines.
func parallelFor(n, workers int, fn func(i int)) {
	if n == 0 {
		return
	}

	jobs := make(chan int, n)

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
}
