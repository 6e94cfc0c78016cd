package ga

import "github.com/layoutforge/qmkevolve/internal/wrand"

// selectParents draws two parent indices from fitnesses per the configured
// Selection method.
func selectParents(fitnesses []float64, method Selection) (int, int) {
	var idxs []int

	switch method {
	case Roulette:
		idxs = wrand.RWS(fitnesses, 2)
	default:
		idxs = wrand.SUS(fitnesses, 2)
	}

	return idxs[0], idxs[1]
}
