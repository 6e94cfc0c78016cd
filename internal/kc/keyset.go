package kc

import "sort"

const wordBits = 64

// words is the number of uint64 words needed to cover the closed keycode
// enumeration; NumKC currently sits just under two words.
var words = (NumKC + wordBits - 1) / wordBits

// KeySet is a small, fixed-width bitmask set over KC. Two words cover the
// full enumeration, so KeySet is cheap to copy and compare by value.
type KeySet struct {
	w [2]uint64
}

func bit(k KC) (word int, mask uint64) {
	return int(k) / wordBits, uint64(1) << (uint(k) % wordBits)
}

// NewKeySet builds a KeySet from a list of keycodes.
func NewKeySet(ks ...KC) KeySet {
	var s KeySet
	for _, k := range ks {
		s = s.Add(k)
	}

	return s
}

// Add returns a KeySet with k present, leaving s unmodified.
func (s KeySet) Add(k KC) KeySet {
	w, m := bit(k)
	s.w[w] |= m

	return s
}

// Remove returns a KeySet with k absent, leaving s unmodified.
func (s KeySet) Remove(k KC) KeySet {
	w, m := bit(k)
	s.w[w] &^= m

	return s
}

// Contains reports whether k is a member of s.
func (s KeySet) Contains(k KC) bool {
	w, m := bit(k)

	return s.w[w]&m != 0
}

// Union returns the union of s and o.
func (s KeySet) Union(o KeySet) KeySet {
	return KeySet{w: [2]uint64{s.w[0] | o.w[0], s.w[1] | o.w[1]}}
}

// Empty reports whether s has no members.
func (s KeySet) Empty() bool {
	return s.w[0] == 0 && s.w[1] == 0
}

// Equal reports whether s and o contain exactly the same keycodes.
func (s KeySet) Equal(o KeySet) bool {
	return s.w == o.w
}

// Intersects reports whether s and o share at least one member.
func (s KeySet) Intersects(o KeySet) bool {
	return s.w[0]&o.w[0] != 0 || s.w[1]&o.w[1] != 0
}

// IsSuperset reports whether s contains every member of o.
func (s KeySet) IsSuperset(o KeySet) bool {
	return s.w[0]&o.w[0] == o.w[0] && s.w[1]&o.w[1] == o.w[1]
}

// Mods returns the subset of s whose members are modifier keycodes.
func (s KeySet) Mods() KeySet {
	var m KeySet
	for _, k := range s.Members() {
		if k.IsMod() {
			m = m.Add(k)
		}
	}

	return m
}

// Regular returns the subset of s whose members are not modifier keycodes.
func (s KeySet) Regular() KeySet {
	var r KeySet
	for _, k := range s.Members() {
		if !k.IsMod() {
			r = r.Add(k)
		}
	}

	return r
}

// Members returns the keycodes in s in ascending KC order.
func (s KeySet) Members() []KC {
	out := make([]KC, 0, NumKC)

	for i := 0; i < NumKC; i++ {
		if s.Contains(KC(i)) {
			out = append(out, KC(i))
		}
	}

	return out
}

// Len returns the number of members of s.
func (s KeySet) Len() int {
	n := 0

	for _, w := range s.w {
		for w != 0 {
			n += int(w & 1)
			w >>= 1
		}
	}

	return n
}

// CountDifferent counts the keycodes that are in exactly one of a and b,
// used by the layout evaluator's distance metric.
func CountDifferent(a, b KeySet) int {
	diff := KeySet{w: [2]uint64{a.w[0] ^ b.w[0], a.w[1] ^ b.w[1]}}

	return diff.Len()
}

func (s KeySet) String() string {
	members := s.Members()
	names := make([]string, len(members))

	for i, k := range members {
		names[i] = k.String()
	}

	sort.Strings(names)

	return "{" + joinComma(names) + "}"
}

func joinComma(ss []string) string {
	out := ""

	for i, s := range ss {
		if i > 0 {
			out += ","
		}

		out += s
	}

	return out
}
