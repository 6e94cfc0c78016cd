package ga

import "math"

// sharedFitness transforms each member's raw fitness into
// f'(i) = f(i) / Σ_j max(0, 1 - (d(i,j)/radius)^alpha), guarding radius == 0
// (every member identical) by leaving fitness untouched.
const nichingAlpha = 5.0

func sharedFitness(fitnesses []float64, dists DistCache, radius float64) []float64 {
	n := len(fitnesses)
	out := make([]float64, n)

	if radius <= 0 {
		copy(out, fitnesses)

		return out
	}

	for i := 0; i < n; i++ {
		denom := 0.0

		for j := 0; j < n; j++ {
			share := 1.0 - math.Pow(dists.at(i, j)/radius, nichingAlpha)
			if share > 0 {
				denom += share
			}
		}

		if denom <= 0 {
			out[i] = fitnesses[i]

			continue
		}

		out[i] = fitnesses[i] / denom
	}

	return out
}
