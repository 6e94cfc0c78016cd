package layout

import "github.com/layoutforge/qmkevolve/internal/kc"

// IsFixed reports whether physical position i is held constant by cfg.Fixed.
func (cfg LayoutCfg) IsFixed(i int) bool {
	return i < len(cfg.Fixed) && !cfg.Fixed[i].Empty()
}

// WithoutFixed drops every fixed position from a layer's key vector,
// returning the free-key vector GA operators are allowed to vary. full must
// have length cfg.NumPhysical().
func (cfg LayoutCfg) WithoutFixed(full []kc.KeySet) []kc.KeySet {
	free := make([]kc.KeySet, 0, len(full))

	for i, ks := range full {
		if !cfg.IsFixed(i) {
			free = append(free, ks)
		}
	}

	return free
}

// WithFixed is the left inverse of WithoutFixed: it reconstructs a full,
// cfg.NumPhysical()-length key vector from a free-key vector, reinserting
// each fixed position's locked assignment. free must have exactly
// cfg.NumPhysical() - (number of fixed positions) entries.
func (cfg LayoutCfg) WithFixed(free []kc.KeySet) []kc.KeySet {
	n := cfg.NumPhysical()
	out := make([]kc.KeySet, n)
	idx := 0

	for i := 0; i < n; i++ {
		if cfg.IsFixed(i) {
			out[i] = cfg.Fixed[i]

			continue
		}

		out[i] = free[idx]
		idx++
	}

	return out
}

// EnforceFixed rewrites every layer of l so each fixed position carries
// cfg.Fixed's value, undoing anything a mutation or crossover operator did
// to those positions.
func (cfg LayoutCfg) EnforceFixed(l Layout) Layout {
	if len(cfg.Fixed) == 0 {
		return l
	}

	for i := range l.Layers {
		keys := l.Layers[i].Keys
		for p := range keys {
			if cfg.IsFixed(p) {
				keys[p] = cfg.Fixed[p]
			}
		}
	}

	return l
}
