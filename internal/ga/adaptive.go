package ga

import (
	"math"
	"math/rand/v2"

	"github.com/layoutforge/qmkevolve/internal/layout"
)

// perturbRate applies a log-normal perturbation to rate with standard
// deviation sigma, clamped to [EP, 1]. sigma is the learning rate 1/sqrt(N).
func perturbRate(rate, sigma float64) float64 {
	perturbed := rate * math.Exp(sigma*rand.NormFloat64())

	return math.Min(1, math.Max(layout.EP, perturbed))
}

// learningRate is the self-adaptation step size for a population of size n.
func learningRate(n int) float64 {
	if n <= 0 {
		return layout.EP
	}

	return 1 / math.Sqrt(float64(n))
}
