// Package layout holds the physical-board description (LayoutCfg), the
// evolvable genome (Layout/Layer), and the tunable Constants consumed by
// the firmware state machines and the GA engine.
package layout

import (
	"math/rand/v2"

	"github.com/layoutforge/qmkevolve/internal/countmap"
	"github.com/layoutforge/qmkevolve/internal/kc"
)

// Finger identifies which of the four tracked fingers strikes a position,
// used to index the bigram-cost table.
type Finger int

const (
	Index Finger = iota
	Middle
	Ring
	Pinky
	numFingers
)

// NumFingers is the size of the Finger enumeration.
const NumFingers = int(numFingers)

// Hand identifies which hand a physical position belongs to.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

// Layer is one indexed assignment of KeySets to physical positions.
type Layer struct {
	Keys []kc.KeySet
}

// NewLayer returns an all-empty layer over n physical positions.
func NewLayer(n int) Layer {
	return Layer{Keys: make([]kc.KeySet, n)}
}

// Clone returns a deep copy of l.
func (l Layer) Clone() Layer {
	keys := make([]kc.KeySet, len(l.Keys))
	copy(keys, l.Keys)

	return Layer{Keys: keys}
}

// Layout is an ordered stack of layers sharing one physical position count;
// it is the GA's genome.
type Layout struct {
	Layers []Layer
}

// NumPhysical returns the physical position count shared by every layer, or
// 0 for an empty layout.
func (l Layout) NumPhysical() int {
	if len(l.Layers) == 0 {
		return 0
	}

	return len(l.Layers[0].Keys)
}

// Clone returns a deep copy of l.
func (l Layout) Clone() Layout {
	layers := make([]Layer, len(l.Layers))
	for i, ly := range l.Layers {
		layers[i] = ly.Clone()
	}

	return Layout{Layers: layers}
}

// Normalise enforces the per-layer layout caps defined by cnst, returning a
// new, idempotent Layout: at most cnst.MaxPhysModPerLayer positions may
// carry a modifier bit, and at most cnst.MaxPhysDuplicatePerLayer positions
// may share the same non-empty key set; offending positions are blanked.
// Positions cfg marks fixed are exempt from both caps and are pinned back to
// cfg.Fixed's value, so no GA operator can ever move them off it.
func Normalise(l Layout, cfg LayoutCfg, cnst Constants) Layout {
	out := l.Clone()

	for i := range out.Layers {
		out.Layers[i] = normaliseLayer(out.Layers[i], cfg, cnst)
	}

	return cfg.EnforceFixed(out)
}

func normaliseLayer(ly Layer, cfg LayoutCfg, cnst Constants) Layer {
	ly = stripExcessMods(ly, cfg, cnst.MaxPhysModPerLayer)
	ly = blankExcessDuplicates(ly, cfg, cnst.MaxPhysDuplicatePerLayer)

	return ly
}

func keySetLess(a, b kc.KeySet) bool {
	am, bm := a.Members(), b.Members()
	for i := 0; i < len(am) && i < len(bm); i++ {
		if am[i] != bm[i] {
			return am[i] < bm[i]
		}
	}

	return len(am) < len(bm)
}

func stripExcessMods(ly Layer, cfg LayoutCfg, maxModPositions int) Layer {
	modPositions := make([]int, 0, len(ly.Keys))

	for i, ks := range ly.Keys {
		if !cfg.IsFixed(i) && !ks.Mods().Empty() {
			modPositions = append(modPositions, i)
		}
	}

	if len(modPositions) <= maxModPositions {
		return ly
	}

	rand.Shuffle(len(modPositions), func(i, j int) {
		modPositions[i], modPositions[j] = modPositions[j], modPositions[i]
	})

	out := ly.Clone()
	for _, pos := range modPositions[maxModPositions:] {
		out.Keys[pos] = kc.KeySet{}
	}

	return out
}

func blankExcessDuplicates(ly Layer, cfg LayoutCfg, maxDuplicates int) Layer {
	counts := countmap.New[kc.KeySet](keySetLess)

	for i, ks := range ly.Keys {
		if !cfg.IsFixed(i) && !ks.Empty() {
			counts.Adjust(ks, 1)
		}
	}

	over := counts.Filter(func(ks kc.KeySet) bool { return counts.Count(ks) > maxDuplicates })
	if len(over) == 0 {
		return ly
	}

	overSet := make(map[kc.KeySet]int, len(over))
	for _, ks := range over {
		overSet[ks] = counts.Count(ks) - maxDuplicates
	}

	out := ly.Clone()

	for i, ks := range out.Keys {
		if cfg.IsFixed(i) {
			continue
		}

		remaining, ok := overSet[ks]
		if !ok || remaining <= 0 {
			continue
		}

		out.Keys[i] = kc.KeySet{}
		overSet[ks] = remaining - 1
	}

	return out
}

// LayoutCost sums the structural complexity of a layout: one point per
// layer plus one point per keycode assigned across every position.
func LayoutCost(l Layout) int {
	cost := len(l.Layers)

	for _, ly := range l.Layers {
		for _, ks := range ly.Keys {
			cost += ks.Len()
		}
	}

	return cost
}

// Distance is the structural distance between two layouts: a penalty for
// differing layer counts plus, for each shared layer index, the number of
// differing key-set members.
func Distance(a, b Layout) int {
	na, nb := len(a.Layers), len(b.Layers)

	minLayers, maxLayers := na, nb
	if na > nb {
		minLayers, maxLayers = nb, na
	}

	numPhysical := a.NumPhysical()

	d := (maxLayers - minLayers) * numPhysical

	for i := 0; i < minLayers; i++ {
		for p := 0; p < numPhysical; p++ {
			d += kc.CountDifferent(a.Layers[i].Keys[p], b.Layers[i].Keys[p])
		}
	}

	return d
}
