package ga

import "github.com/layoutforge/qmkevolve/internal/layout"

// assignSpecies performs greedy clustering at radius r: walk members in
// order; each unassigned member founds a new species and absorbs every
// later unassigned member within r. Returns each member's species index,
// numbered from 0 in founding order.
//
// The source this engine is grounded on skipped every member unconditionally
// ("if species[i] == -1 { continue }", backwards from the intended
// "already assigned" guard), which left every member unspeciated. This
// corrects the guard to the clustering behaviour the binary search above it
// was always written to expect.
func assignSpecies(dists DistCache, n int, r float64) []int {
	species := make([]int, n)
	for i := range species {
		species[i] = -1
	}

	next := 0

	for i := 0; i < n; i++ {
		if species[i] != -1 {
			continue
		}

		species[i] = next

		for j := i + 1; j < n; j++ {
			if species[j] == -1 && dists.at(i, j) <= r {
				species[j] = next
			}
		}

		next++
	}

	return species
}

// speciate binary-searches a radius in [0, dists.Max()] that produces
// exactly target species, to within layout.EP, returning the final species
// assignment and the radius used.
func speciate(dists DistCache, n, target int) ([]int, float64) {
	lo, hi := 0.0, dists.Max()
	radius := hi

	var species []int

	for hi-lo > layout.EP {
		radius = (lo + hi) / 2
		species = assignSpecies(dists, n, radius)
		count := countSpecies(species)

		switch {
		case count < target:
			hi = radius
		case count == target:
			return species, radius
		default:
			lo = radius
		}
	}

	if species == nil {
		species = assignSpecies(dists, n, radius)
	}

	return species, radius
}

func countSpecies(species []int) int {
	max := -1
	for _, s := range species {
		if s > max {
			max = s
		}
	}

	return max + 1
}
