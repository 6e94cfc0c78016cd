package ga

import (
	"math/rand/v2"
	"runtime"

	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/samber/lo"
)

// EvaluatedGen is a generation with fitness and species assigned, sorted
// descending by fitness.
type EvaluatedGen struct {
	mems  []Member
	dists DistCache
}

// Best returns the highest-fitness member.
func (g EvaluatedGen) Best() Member {
	return g.mems[0]
}

// MeanFitness averages fitness across the generation.
func (g EvaluatedGen) MeanFitness() float64 {
	if len(g.mems) == 0 {
		return 0
	}

	fitnesses := lo.Map(g.mems, func(m Member, _ int) float64 { return m.Fitness })

	return lo.Sum(fitnesses) / float64(len(g.mems))
}

// MeanDistance averages pairwise structural distance, if a cache was built.
func (g EvaluatedGen) MeanDistance() float64 {
	n := len(g.mems)
	if n < 2 || g.dists.empty() {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += g.dists.at(i, j)
		}
	}

	return 2 * sum / float64(n*(n-1))
}

// NumSpecies returns the distinct species count assigned this generation.
func (g EvaluatedGen) NumSpecies() int {
	seen := make(map[int]bool)
	for _, m := range g.mems {
		seen[m.Species] = true
	}

	return len(seen)
}

func (g EvaluatedGen) survivors(cfg Cfg) []Member {
	switch cfg.Survival {
	case SpeciesTopProportion:
		return speciesTopProportion(g.mems, cfg.SurvivalProp)
	default:
		return topProportion(g.mems, cfg.SurvivalProp)
	}
}

func topProportion(mems []Member, prop float64) []Member {
	n := int(float64(len(mems)) * prop)

	out := make([]Member, n)
	for i := 0; i < n; i++ {
		out[i] = mems[i].Clone()
	}

	return out
}

// speciesTopProportion keeps the top prop fraction of each species cluster,
// ranked by global fitness within the cluster; mems is already sorted
// descending by fitness so each species' members appear in fitness order.
func speciesTopProportion(mems []Member, prop float64) []Member {
	bySpecies := make(map[int][]Member)

	order := make([]int, 0)

	for _, m := range mems {
		if _, ok := bySpecies[m.Species]; !ok {
			order = append(order, m.Species)
		}

		bySpecies[m.Species] = append(bySpecies[m.Species], m)
	}

	out := make([]Member, 0, len(mems))

	for _, sp := range order {
		group := bySpecies[sp]

		keep := int(float64(len(group)) * prop)
		if keep == 0 {
			keep = 1
		}

		for i := 0; i < keep && i < len(group); i++ {
			out = append(out, group[i].Clone())
		}
	}

	return out
}

// NextGen reproduces survivors into a full new unevaluated generation.
func (g EvaluatedGen) NextGen(cfg Cfg, eval Evaluator, workers int) UnevaluatedGen {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	survivors := g.survivors(cfg)
	remaining := cfg.PopSize - len(survivors)

	if remaining < 0 {
		remaining = 0
		survivors = survivors[:cfg.PopSize]
	}

	fitnesses := lo.Map(g.mems, func(m Member, _ int) float64 { return m.Fitness })

	lr := learningRate(cfg.PopSize)

	pairs := (remaining + 1) / 2
	children := make([][2]Member, pairs)

	parallelFor(pairs, workers, func(p int) {
		ai, bi := selectParents(fitnesses, cfg.Selection)
		parentA, parentB := g.mems[ai], g.mems[bi]

		crossoverRate := cfg.CrossoverRate
		if cfg.CrossoverMode == Adaptive {
			crossoverRate = parentA.CrossoverRate
		}

		var c1, c2 layout.Layout

		if rand.Float64() < crossoverRate {
			c1, c2 = eval.Crossover(&parentA.State, &parentB.State)
		} else {
			c1, c2 = parentA.State.Clone(), parentB.State.Clone()
		}

		children[p][0] = reproduceChild(c1, parentA, cfg, eval, lr)
		children[p][1] = reproduceChild(c2, parentB, cfg, eval, lr)
	})

	next := make([]Member, 0, cfg.PopSize)
	next = append(next, survivors...)

	for _, pair := range children {
		next = append(next, pair[0])
		if len(next) < cfg.PopSize {
			next = append(next, pair[1])
		}
	}

	if len(next) > cfg.PopSize {
		next = next[:cfg.PopSize]
	}

	return FromMembers(next)
}

func reproduceChild(state layout.Layout, parent Member, cfg Cfg, eval Evaluator, lr float64) Member {
	mutationRate := cfg.MutationRate
	if cfg.MutationMode == Adaptive {
		mutationRate = perturbRate(parent.MutationRate, lr)
	}

	if rand.Float64() < mutationRate {
		state = eval.Mutate(&state, mutationRate)
	}

	m := Member{State: state, Species: -1}

	if cfg.CrossoverMode == Adaptive {
		m.CrossoverRate = perturbRate(parent.CrossoverRate, lr)
	} else {
		m.CrossoverRate = cfg.CrossoverRate
	}

	m.MutationRate = mutationRate

	return m
}

