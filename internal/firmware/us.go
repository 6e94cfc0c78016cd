package firmware

import (
	"sync"

	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
)

var (
	usLayoutOnce sync.Once
	usLayout     *layout.Layout
)

// canonicalUsLayout returns the process-wide singleton single-layer layout
// mapping each physical position 1:1 to the keycode of the same index. The
// corpus ingester addresses physical positions with PhysForKC so that a
// corpus character becomes a PhysEv sequence the rest of the pipeline can
// replay against this same layout.
func canonicalUsLayout() *layout.Layout {
	usLayoutOnce.Do(func() {
		keys := make([]kc.KeySet, kc.NumKC)
		for i := range keys {
			keys[i] = kc.NewKeySet(kc.KC(i))
		}

		usLayout = &layout.Layout{Layers: []layout.Layer{{Keys: keys}}}
	})

	return usLayout
}

// PhysForKC returns the physical position the canonical US layout assigns
// to k, used by ingestion to translate corpus characters into PhysEv.
func PhysForKC(k kc.KC) uint32 {
	return uint32(k)
}

// UsModel is the fixed reference state machine used to convert the raw
// corpus into the canonical key-event stream the GA's layouts are judged
// against.
type UsModel = Model

// NewUs builds a UsModel over the canonical singleton layout.
func NewUs(cnst layout.Constants) *UsModel {
	return New(canonicalUsLayout(), cnst)
}

// ComputeKevs replays corpus through a fresh UsModel, returning the
// canonical key-event stream produced by the reference coalescing rules.
// Illegal physical events in the corpus (a bug in ingestion, since the
// corpus was itself generated against this same canonical layout) panic:
// per SPEC_FULL.md §7 this is a programmer-bug-class invariant, not a
// recoverable error.
func ComputeKevs(corpus []kc.PhysEv, cnst layout.Constants) []kc.KeyEv {
	m := NewUs(cnst)

	kevs := make([]kc.KeyEv, 0, len(corpus))

	for _, pev := range corpus {
		events, ok := m.Event(pev)
		if !ok {
			panic("firmware: illegal physical event in corpus replay")
		}

		press := pev.Press
		for _, ks := range events {
			kevs = append(kevs, kc.KeyEv{Key: ks, Press: press})
		}
	}

	return kevs
}
