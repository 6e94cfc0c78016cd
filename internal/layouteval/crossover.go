package layouteval

import (
	"math/rand/v2"

	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/layoutforge/qmkevolve/internal/wrand"
)

// CrossoverStrategy enumerates the layout crossover operators.
type CrossoverStrategy int

const (
	CrossoverNoOp CrossoverStrategy = iota
	CrossoverTwoPointLayers
	CrossoverTwoPointKeys
)

// Crossover produces two children from parents p1/p2, choosing a strategy
// proportionally to cnst.CrossoverStratWeights, then normalising both
// children per cfg's fixed positions and cnst's per-layer caps.
func Crossover(p1, p2 layout.Layout, cfg layout.LayoutCfg, cnst layout.Constants) (layout.Layout, layout.Layout) {
	strat := CrossoverStrategy(wrand.Index(cnst.CrossoverStratWeights))

	var c1, c2 layout.Layout

	switch strat {
	case CrossoverTwoPointLayers:
		c1, c2 = twoPointLayers(p1, p2)
	case CrossoverTwoPointKeys:
		c1, c2 = twoPointKeys(p1, p2)
	default:
		c1, c2 = p1.Clone(), p2.Clone()
	}

	return layout.Normalise(c1, cfg, cnst), layout.Normalise(c2, cfg, cnst)
}

// twoPointLayers swaps a contiguous run of layers between the two parents.
func twoPointLayers(p1, p2 layout.Layout) (layout.Layout, layout.Layout) {
	n := len(p1.Layers)
	if n < 2 {
		return p1.Clone(), p2.Clone()
	}

	i, j := twoPoints(n)

	c1, c2 := p1.Clone(), p2.Clone()
	for k := i; k <= j; k++ {
		c1.Layers[k], c2.Layers[k] = p2.Layers[k].Clone(), p1.Layers[k].Clone()
	}

	return c1, c2
}

// twoPointKeys swaps a contiguous run of key positions within one randomly
// chosen layer between the two parents.
func twoPointKeys(p1, p2 layout.Layout) (layout.Layout, layout.Layout) {
	if len(p1.Layers) == 0 {
		return p1.Clone(), p2.Clone()
	}

	layerIdx := rand.IntN(len(p1.Layers))
	n := p1.NumPhysical()

	if n < 2 {
		return p1.Clone(), p2.Clone()
	}

	i, j := twoPoints(n)

	c1, c2 := p1.Clone(), p2.Clone()
	for k := i; k <= j; k++ {
		c1.Layers[layerIdx].Keys[k], c2.Layers[layerIdx].Keys[k] =
			p2.Layers[layerIdx].Keys[k], p1.Layers[layerIdx].Keys[k]
	}

	return c1, c2
}

func twoPoints(n int) (int, int) {
	i, j := rand.IntN(n), rand.IntN(n)
	if i > j {
		i, j = j, i
	}

	return i, j
}
