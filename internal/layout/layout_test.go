package layout

import (
	"testing"

	"github.com/layoutforge/qmkevolve/internal/kc"
)

func TestNormaliseIdempotent(t *testing.T) {
	cnst := DefaultConstants()
	cnst.MaxPhysModPerLayer = 1
	cnst.MaxPhysDuplicatePerLayer = 1

	l := Layout{Layers: []Layer{{Keys: []kc.KeySet{
		kc.NewKeySet(kc.Ctrl, kc.C),
		kc.NewKeySet(kc.Ctrl),
		kc.NewKeySet(kc.C),
		kc.NewKeySet(kc.C),
	}}}}

	once := Normalise(l, LayoutCfg{}, cnst)
	twice := Normalise(once, LayoutCfg{}, cnst)

	if !layoutsEqual(once, twice) {
		t.Fatalf("Normalise is not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestNormaliseStripsExcessMods(t *testing.T) {
	cnst := DefaultConstants()
	cnst.MaxPhysModPerLayer = 1
	cnst.MaxPhysDuplicatePerLayer = 10

	l := Layout{Layers: []Layer{{Keys: []kc.KeySet{
		kc.NewKeySet(kc.Ctrl),
		kc.NewKeySet(kc.Shift),
	}}}}

	out := Normalise(l, LayoutCfg{}, cnst)

	modCount := 0

	for _, ks := range out.Layers[0].Keys {
		if !ks.Mods().Empty() {
			modCount++
		}
	}

	if modCount != 1 {
		t.Fatalf("expected exactly 1 mod-bearing position, got %d", modCount)
	}
}

func TestNormaliseBlanksExcessDuplicates(t *testing.T) {
	cnst := DefaultConstants()
	cnst.MaxPhysModPerLayer = 10
	cnst.MaxPhysDuplicatePerLayer = 1

	l := Layout{Layers: []Layer{{Keys: []kc.KeySet{
		kc.NewKeySet(kc.C),
		kc.NewKeySet(kc.C),
	}}}}

	out := Normalise(l, LayoutCfg{}, cnst)

	nonEmpty := 0

	for _, ks := range out.Layers[0].Keys {
		if !ks.Empty() {
			nonEmpty++
		}
	}

	if nonEmpty != 1 {
		t.Fatalf("expected exactly 1 surviving duplicate, got %d", nonEmpty)
	}
}

func TestLayoutSizeStableUnderNormalise(t *testing.T) {
	cnst := DefaultConstants()

	l := Layout{Layers: []Layer{NewLayer(5), NewLayer(5)}}

	out := Normalise(l, LayoutCfg{}, cnst)
	if out.NumPhysical() != l.NumPhysical() {
		t.Fatalf("NumPhysical changed: %d -> %d", l.NumPhysical(), out.NumPhysical())
	}
}

func TestWithoutFixedThenWithFixedIsIdentity(t *testing.T) {
	cfg := LayoutCfg{Cost: make([]uint64, 5), Fixed: []kc.KeySet{
		kc.NewKeySet(kc.Esc), {}, {}, kc.NewKeySet(kc.Tab), {},
	}}

	free := []kc.KeySet{kc.NewKeySet(kc.A), kc.NewKeySet(kc.B), kc.NewKeySet(kc.C)}

	full := cfg.WithFixed(free)
	if len(full) != len(cfg.Fixed) {
		t.Fatalf("WithFixed produced %d positions, want %d", len(full), len(cfg.Fixed))
	}

	got := cfg.WithoutFixed(full)
	if len(got) != len(free) {
		t.Fatalf("WithoutFixed(WithFixed(free)) has %d entries, want %d", len(got), len(free))
	}

	for i := range free {
		if !got[i].Equal(free[i]) {
			t.Fatalf("WithoutFixed(WithFixed(free))[%d] = %v, want %v", i, got[i], free[i])
		}
	}
}

func TestEnforceFixedPinsPositionAcrossEveryLayer(t *testing.T) {
	cfg := LayoutCfg{Fixed: []kc.KeySet{kc.NewKeySet(kc.Esc), {}}}

	cnst := DefaultConstants()

	l := Layout{Layers: []Layer{
		{Keys: []kc.KeySet{kc.NewKeySet(kc.A), kc.NewKeySet(kc.B)}},
		{Keys: []kc.KeySet{kc.NewKeySet(kc.C), kc.NewKeySet(kc.D)}},
	}}

	out := Normalise(l, cfg, cnst)

	for i, ly := range out.Layers {
		if !ly.Keys[0].Equal(kc.NewKeySet(kc.Esc)) {
			t.Fatalf("layer %d position 0 = %v, want fixed KC_ESC", i, ly.Keys[0])
		}
	}
}

func TestDistanceSymmetricForEqualLayouts(t *testing.T) {
	l := Layout{Layers: []Layer{{Keys: []kc.KeySet{kc.NewKeySet(kc.A)}}}}
	if d := Distance(l, l.Clone()); d != 0 {
		t.Fatalf("Distance(l, l) = %d, want 0", d)
	}
}

func layoutsEqual(a, b Layout) bool {
	if len(a.Layers) != len(b.Layers) {
		return false
	}

	for i := range a.Layers {
		if len(a.Layers[i].Keys) != len(b.Layers[i].Keys) {
			return false
		}

		for p := range a.Layers[i].Keys {
			if !a.Layers[i].Keys[p].Equal(b.Layers[i].Keys[p]) {
				return false
			}
		}
	}

	return true
}
