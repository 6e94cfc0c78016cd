package wrand

import "testing"

func TestSUSEqualWeightsDistinct(t *testing.T) {
	weights := []float64{1, 1, 1, 1}

	picks := SUS(weights, 4)
	if len(picks) != 4 {
		t.Fatalf("SUS returned %d picks, want 4", len(picks))
	}

	seen := make(map[int]bool)
	for _, p := range picks {
		seen[p] = true
	}

	if len(seen) != 4 {
		t.Fatalf("SUS(%v, 4) = %v, want four distinct indices", weights, picks)
	}

	for i, p := range picks {
		if p != i {
			t.Fatalf("SUS(%v, 4)[%d] = %d, want %d (in order)", weights, i, p, i)
		}
	}
}

func TestRWSZeroWeightsFallsBackUniform(t *testing.T) {
	picks := RWS([]float64{0, 0, 0}, 5)
	if len(picks) != 5 {
		t.Fatalf("RWS returned %d picks, want 5", len(picks))
	}

	for _, p := range picks {
		if p < 0 || p >= 3 {
			t.Fatalf("pick %d out of range [0,3)", p)
		}
	}
}

func TestIndexRespectsDominantWeight(t *testing.T) {
	weights := []float64{0, 1000, 0}
	for i := 0; i < 20; i++ {
		if got := Index(weights); got != 1 {
			t.Fatalf("Index(%v) = %d, want 1 (overwhelmingly likely)", weights, got)
		}
	}
}
