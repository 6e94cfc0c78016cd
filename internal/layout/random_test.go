package layout

import (
	"testing"

	"github.com/layoutforge/qmkevolve/internal/kc"
)

func TestRandomProducesRequestedShape(t *testing.T) {
	cfg := LayoutCfg{Cost: make([]uint64, 8)}
	universe := []kc.KeySet{kc.NewKeySet(kc.A), kc.NewKeySet(kc.B), kc.NewKeySet(kc.C)}
	cnst := DefaultConstants()

	l := Random(cfg, universe, cnst, 2)

	if len(l.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(l.Layers))
	}

	if l.NumPhysical() != 8 {
		t.Fatalf("NumPhysical() = %d, want 8", l.NumPhysical())
	}
}

func TestRandomHoldsFixedPositionsConstant(t *testing.T) {
	cfg := LayoutCfg{Cost: make([]uint64, 4), Fixed: []kc.KeySet{kc.NewKeySet(kc.Esc), {}, {}, {}}}
	universe := []kc.KeySet{kc.NewKeySet(kc.A), kc.NewKeySet(kc.B)}
	cnst := DefaultConstants()

	l := Random(cfg, universe, cnst, 3)

	for i, ly := range l.Layers {
		if !ly.Keys[0].Equal(kc.NewKeySet(kc.Esc)) {
			t.Fatalf("layer %d position 0 = %v, want fixed KC_ESC", i, ly.Keys[0])
		}
	}
}

func TestRandomKeySetRespectsZeroWeights(t *testing.T) {
	cnst := DefaultConstants()
	cnst.NumRegAssignedWeights = []float64{1, 0}
	cnst.NumModAssignedWeights = []float64{1, 0, 0, 0, 0}

	universe := []kc.KeySet{kc.NewKeySet(kc.A)}

	for i := 0; i < 20; i++ {
		if ks := randomKeySet(universe, cnst); !ks.Empty() {
			t.Fatalf("expected an empty key set with all-weight-on-zero, got %s", ks)
		}
	}
}
