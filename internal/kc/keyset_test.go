package kc

import "testing"

func TestKeySetAddContains(t *testing.T) {
	s := NewKeySet(Ctrl, C)

	if !s.Contains(Ctrl) || !s.Contains(C) {
		t.Fatalf("expected Ctrl and C in %v", s)
	}

	if s.Contains(Shift) {
		t.Fatalf("did not expect Shift in %v", s)
	}
}

func TestKeySetModsRegular(t *testing.T) {
	s := NewKeySet(Ctrl, Shift, C)

	mods := s.Mods()
	if !mods.Contains(Ctrl) || !mods.Contains(Shift) || mods.Contains(C) {
		t.Fatalf("Mods() = %v", mods)
	}

	reg := s.Regular()
	if !reg.Contains(C) || reg.Contains(Ctrl) {
		t.Fatalf("Regular() = %v", reg)
	}
}

func TestKeySetSuperset(t *testing.T) {
	full := NewKeySet(Ctrl, Shift)
	part := NewKeySet(Ctrl)

	if !full.IsSuperset(part) {
		t.Fatalf("expected %v to be a superset of %v", full, part)
	}

	if part.IsSuperset(full) {
		t.Fatalf("did not expect %v to be a superset of %v", part, full)
	}
}

func TestKeySetEqualAndUnion(t *testing.T) {
	a := NewKeySet(Ctrl, C)
	b := NewKeySet(C, Ctrl)

	if !a.Equal(b) {
		t.Fatalf("expected %v == %v regardless of insertion order", a, b)
	}

	u := NewKeySet(Ctrl).Union(NewKeySet(C))
	if !u.Equal(a) {
		t.Fatalf("Union mismatch: %v != %v", u, a)
	}
}

func TestCountDifferent(t *testing.T) {
	a := NewKeySet(Ctrl, C)
	b := NewKeySet(Ctrl, Shift)

	// a and b share Ctrl, differ on C vs Shift: two differing members.
	if got := CountDifferent(a, b); got != 2 {
		t.Fatalf("CountDifferent = %d, want 2", got)
	}
}

func TestByNameRoundTrip(t *testing.T) {
	for i := 0; i < NumKC; i++ {
		k := KC(i)

		got, ok := ByName(k.String())
		if !ok || got != k {
			t.Fatalf("ByName(%q) = %v, %v; want %v, true", k.String(), got, ok, k)
		}
	}
}
