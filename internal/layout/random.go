package layout

import (
	"math/rand/v2"

	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/wrand"
)

var allMods = []kc.KC{kc.Ctrl, kc.Shift, kc.Alt, kc.Super}

// Random builds a Layout of numLayers layers over len(cfg.Cost) physical
// positions, drawing each position's key set from universe (the board's
// full key catalogue) and a weighted count of modifiers, per cnst's
// NumRegAssignedWeights/NumModAssignedWeights: weight index k is the
// relative likelihood of assigning k regular keys (resp. k modifier
// keycodes) to that position.
func Random(cfg LayoutCfg, universe []kc.KeySet, cnst Constants, numLayers int) Layout {
	layers := make([]Layer, numLayers)
	for i := range layers {
		layers[i] = randomLayer(cfg, universe, cnst)
	}

	return Normalise(Layout{Layers: layers}, cfg, cnst)
}

func randomLayer(cfg LayoutCfg, universe []kc.KeySet, cnst Constants) Layer {
	n := cfg.NumPhysical()
	ly := NewLayer(n)

	for pos := 0; pos < n; pos++ {
		if cfg.IsFixed(pos) {
			ly.Keys[pos] = cfg.Fixed[pos]

			continue
		}

		ly.Keys[pos] = randomKeySet(universe, cnst)
	}

	return ly
}

func randomKeySet(universe []kc.KeySet, cnst Constants) kc.KeySet {
	var ks kc.KeySet

	if len(universe) > 0 && len(cnst.NumRegAssignedWeights) > 0 {
		numReg := wrand.Index(cnst.NumRegAssignedWeights)
		for i := 0; i < numReg; i++ {
			ks = ks.Union(universe[rand.IntN(len(universe))].Regular())
		}
	}

	if len(cnst.NumModAssignedWeights) > 0 {
		numMods := wrand.Index(cnst.NumModAssignedWeights)
		if numMods > len(allMods) {
			numMods = len(allMods)
		}

		perm := rand.Perm(len(allMods))
		for i := 0; i < numMods; i++ {
			ks = ks.Add(allMods[perm[i]])
		}
	}

	return ks
}
