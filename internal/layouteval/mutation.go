package layouteval

import (
	"math/rand/v2"

	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/layoutforge/qmkevolve/internal/wrand"
)

// MutationStrategy enumerates the layout mutation operators.
type MutationStrategy int

const (
	MutationNoOp MutationStrategy = iota
	MutationRandomReplace
	MutationSwapLayers
	MutationSwapKeys
)

// Mutate applies one strategy to l, chosen proportionally to
// cnst.MutateStratWeights, and normalises the result per cfg's fixed
// positions and cnst's per-layer caps. rate is the effective mutation rate
// for this call (the evolved per-member adaptive rate, or ga.Cfg.MutationRate
// under the fixed variant) and controls MutationRandomReplace's per-key
// substitution probability, not just whether Mutate runs at all. l is not
// modified in place.
func Mutate(l layout.Layout, cfg layout.LayoutCfg, cnst layout.Constants, rate float64) layout.Layout {
	strat := MutationStrategy(wrand.Index(cnst.MutateStratWeights))

	var out layout.Layout

	switch strat {
	case MutationRandomReplace:
		out = randomReplace(l, rate)
	case MutationSwapLayers:
		out = swapLayers(l)
	case MutationSwapKeys:
		out = swapKeys(l)
	default:
		out = l.Clone()
	}

	return layout.Normalise(out, cfg, cnst)
}

func randomReplace(l layout.Layout, rate float64) layout.Layout {
	out := l.Clone()

	for i := range out.Layers {
		for p := range out.Layers[i].Keys {
			if rand.Float64() < rate {
				out.Layers[i].Keys[p] = kc.NewKeySet(kc.KC(rand.IntN(kc.NumKC)))
			}
		}
	}

	return out
}

func swapLayers(l layout.Layout) layout.Layout {
	out := l.Clone()

	if len(out.Layers) < 2 {
		return out
	}

	i, j := rand.IntN(len(out.Layers)), rand.IntN(len(out.Layers))
	out.Layers[i], out.Layers[j] = out.Layers[j], out.Layers[i]

	return out
}

func swapKeys(l layout.Layout) layout.Layout {
	out := l.Clone()

	n := out.NumPhysical()
	if n < 2 || len(out.Layers) == 0 {
		return out
	}

	layerIdx := rand.IntN(len(out.Layers))
	i, j := rand.IntN(n), rand.IntN(n)

	keys := out.Layers[layerIdx].Keys
	keys[i], keys[j] = keys[j], keys[i]

	return out
}
