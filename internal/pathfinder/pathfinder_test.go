package pathfinder

import (
	"testing"

	"github.com/layoutforge/qmkevolve/internal/firmware"
	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
)

func singleKeyLayout(k kc.KC) *layout.Layout {
	return &layout.Layout{Layers: []layout.Layer{{Keys: []kc.KeySet{kc.NewKeySet(k)}}}}
}

func TestFindEmptyCorpus(t *testing.T) {
	cnst := layout.DefaultConstants()
	cfg := layout.LayoutCfg{Cost: []uint64{5}}

	res := Find(cfg, nil, cnst, singleKeyLayout(kc.C))
	if res.KevsFound != 0 || res.Cost != 0 {
		t.Fatalf("Find(empty) = %+v, want {0 0}", res)
	}
}

func TestFindSingleKeyPressRelease(t *testing.T) {
	cnst := layout.DefaultConstants()

	kevs := firmware.ComputeKevs([]kc.PhysEv{
		{Phys: firmware.PhysForKC(kc.C), Press: true},
		{Phys: firmware.PhysForKC(kc.C), Press: false},
	}, cnst)

	cfg := layout.LayoutCfg{Cost: []uint64{5}}

	res := Find(cfg, kevs, cnst, singleKeyLayout(kc.C))
	if res.KevsFound != len(kevs) {
		t.Fatalf("KevsFound = %d, want %d (full reproduction)", res.KevsFound, len(kevs))
	}

	if res.Cost != 10 {
		t.Fatalf("Cost = %d, want 10 (press+release at cost 5 each)", res.Cost)
	}
}

func TestFindCtrlCSequence(t *testing.T) {
	cnst := layout.DefaultConstants()

	kevs := firmware.ComputeKevs([]kc.PhysEv{
		{Phys: firmware.PhysForKC(kc.Ctrl), Press: true},
		{Phys: firmware.PhysForKC(kc.C), Press: true},
		{Phys: firmware.PhysForKC(kc.C), Press: false},
		{Phys: firmware.PhysForKC(kc.Ctrl), Press: false},
	}, cnst)

	// Coalescing collapses the mod-only Ctrl press into the following C
	// press, so the canonical stream has 3 entries: CtrlC-press,
	// Ctrl-release, {}-release. See DESIGN.md for why this differs from
	// the distilled scenario table's raw physical-event count.
	if len(kevs) != 3 {
		t.Fatalf("len(kevs) = %d, want 3", len(kevs))
	}

	cfg := layout.LayoutCfg{Cost: []uint64{5, 3}} // phys0=C cost5, phys1=Ctrl cost3
	l := &layout.Layout{Layers: []layout.Layer{{Keys: []kc.KeySet{
		kc.NewKeySet(kc.C),
		kc.NewKeySet(kc.Ctrl),
	}}}}

	res := Find(cfg, kevs, cnst, l)
	if res.KevsFound != 3 {
		t.Fatalf("KevsFound = %d, want 3", res.KevsFound)
	}

	if res.Cost != 2*3+2*5 {
		t.Fatalf("Cost = %d, want %d", res.Cost, 2*3+2*5)
	}
}

func TestFindRoundTripOnReferenceLayout(t *testing.T) {
	cnst := layout.DefaultConstants()

	corpus := []kc.PhysEv{
		{Phys: firmware.PhysForKC(kc.A), Press: true},
		{Phys: firmware.PhysForKC(kc.A), Press: false},
		{Phys: firmware.PhysForKC(kc.B), Press: true},
		{Phys: firmware.PhysForKC(kc.B), Press: false},
	}
	kevs := firmware.ComputeKevs(corpus, cnst)

	costs := make([]uint64, kc.NumKC)
	for i := range costs {
		costs[i] = 1
	}

	cfg := layout.LayoutCfg{Cost: costs}

	keys := make([]kc.KeySet, kc.NumKC)
	for i := range keys {
		keys[i] = kc.NewKeySet(kc.KC(i))
	}

	reference := &layout.Layout{Layers: []layout.Layer{{Keys: keys}}}

	res := Find(cfg, kevs, cnst, reference)
	if res.KevsFound != len(kevs) {
		t.Fatalf("KevsFound = %d, want %d", res.KevsFound, len(kevs))
	}

	if res.Cost != uint64(len(corpus)) {
		t.Fatalf("Cost = %d, want %d (one per physical event at cost 1)", res.Cost, len(corpus))
	}
}

func TestFindMonotonicCorpusIdx(t *testing.T) {
	cnst := layout.DefaultConstants()

	kevs := firmware.ComputeKevs([]kc.PhysEv{
		{Phys: firmware.PhysForKC(kc.A), Press: true},
		{Phys: firmware.PhysForKC(kc.A), Press: false},
	}, cnst)

	cfg := layout.LayoutCfg{Cost: []uint64{1}}

	res := Find(cfg, kevs, cnst, singleKeyLayout(kc.A))
	if res.KevsFound < 0 || res.KevsFound > len(kevs) {
		t.Fatalf("KevsFound out of range: %d", res.KevsFound)
	}
}
