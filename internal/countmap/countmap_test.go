package countmap

import "testing"

func intLess(a, b int) bool { return a < b }

func TestAdjustAddRemove(t *testing.T) {
	m := New[int](intLess)

	if !m.Adjust(5, 1) {
		t.Fatalf("Adjust(5, +1) should succeed from empty")
	}

	if m.Count(5) != 1 {
		t.Fatalf("Count(5) = %d, want 1", m.Count(5))
	}

	if !m.Adjust(5, -1) {
		t.Fatalf("Adjust(5, -1) should succeed")
	}

	if m.Count(5) != 0 || m.Len() != 0 {
		t.Fatalf("expected 5 removed after count hits zero, got count=%d len=%d", m.Count(5), m.Len())
	}
}

func TestAdjustRejectsNegative(t *testing.T) {
	m := New[int](intLess)
	if m.Adjust(1, -1) {
		t.Fatalf("Adjust should reject a decrement below zero")
	}
}

func TestPeekDoesNotMutate(t *testing.T) {
	m := New[int](intLess)
	m.Adjust(2, 1)

	if got := m.Peek(2, 1); got != 2 {
		t.Fatalf("Peek(2, +1) = %d, want 2", got)
	}

	if m.Count(2) != 1 {
		t.Fatalf("Peek must not mutate: Count(2) = %d, want 1", m.Count(2))
	}
}

func TestMembersSortedAndFilter(t *testing.T) {
	m := New[int](intLess)
	for _, k := range []int{5, 1, 3} {
		m.Adjust(k, 1)
	}

	got := m.Members()
	want := []int{1, 3, 5}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Members() = %v, want %v", got, want)
		}
	}

	odd := m.Filter(func(k int) bool { return k%2 == 1 })
	if len(odd) != 3 {
		t.Fatalf("Filter(odd) = %v, want all three members (all odd)", odd)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New[int](intLess)
	m.Adjust(1, 1)

	c := m.Clone()
	c.Adjust(1, 1)

	if m.Count(1) != 1 {
		t.Fatalf("mutating the clone must not affect the original")
	}

	if c.Count(1) != 2 {
		t.Fatalf("Clone() count = %d, want 2", c.Count(1))
	}
}
