// Package firmware implements the keyboard-firmware state machine
// (QmkModel) and the fixed reference state machine (UsModel) used to turn
// the raw corpus into a canonical key-event stream. Both share the same
// QMK-style mod-coalescing rules; they differ only in which Layout they
// read physical positions from.
package firmware

import (
	"github.com/layoutforge/qmkevolve/internal/countmap"
	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
)

func kcLess(a, b kc.KC) bool { return a < b }

// Model is a firmware state machine bound to one Layout and one active
// layer. It is cheap to Clone, which the path finder relies on to explore
// multiple successor states from one node.
type Model struct {
	lay         *layout.Layout
	activeLayer int

	counts          *countmap.Map[kc.KC]
	pressed         map[uint32]bool
	modPressedCount int

	cur     kc.KeySet
	pending bool

	idleSinceEmission int

	maxPhysPressed int
	maxPhysIdle    int
	maxModPressed  int
}

// New builds a firmware model over l, starting on layer 0 with no keys
// held.
func New(l *layout.Layout, cnst layout.Constants) *Model {
	return &Model{
		lay:            l,
		counts:         countmap.New[kc.KC](kcLess),
		pressed:        make(map[uint32]bool),
		maxPhysPressed: cnst.MaxPhysPressed,
		maxPhysIdle:    cnst.MaxPhysIdle,
		maxModPressed:  cnst.MaxModPressed,
	}
}

// Clone returns an independent deep copy of m.
func (m *Model) Clone() *Model {
	pressed := make(map[uint32]bool, len(m.pressed))
	for k, v := range m.pressed {
		pressed[k] = v
	}

	return &Model{
		lay:               m.lay,
		activeLayer:       m.activeLayer,
		counts:            m.counts.Clone(),
		pressed:           pressed,
		modPressedCount:   m.modPressedCount,
		cur:               m.cur,
		pending:           m.pending,
		idleSinceEmission: m.idleSinceEmission,
		maxPhysPressed:    m.maxPhysPressed,
		maxPhysIdle:       m.maxPhysIdle,
		maxModPressed:     m.maxModPressed,
	}
}

func (m *Model) getKey(phys uint32) kc.KeySet {
	layer := m.lay.Layers[m.activeLayer]
	if int(phys) >= len(layer.Keys) {
		return kc.KeySet{}
	}

	return layer.Keys[phys]
}

// structurallyValid checks the press/release bookkeeping invariants that
// don't require simulating coalescing: no double press, no release without
// a matching press, and the pressed/mod-pressed caps.
func (m *Model) structurallyValid(pev kc.PhysEv) bool {
	if pev.Press {
		if m.pressed[pev.Phys] {
			return false
		}

		if isMod := !m.getKey(pev.Phys).Mods().Empty(); isMod && m.modPressedCount+1 > m.maxModPressed {
			return false
		}

		return len(m.pressed)+1 <= m.maxPhysPressed
	}

	return m.pressed[pev.Phys]
}

// applyCoalescing mutates m to reflect pev, assuming structurallyValid(pev)
// already holds. It returns ok=false (state left unmodified by the caller,
// which must discard the receiver) only if the press/release would drive a
// keycode's count negative; a legal transition that merely defers emission
// returns ok=true with a nil/empty events slice.
func (m *Model) applyCoalescing(pev kc.PhysEv) (events []kc.KeySet, ok bool) {
	prev := m.cur

	delta := 1
	if !pev.Press {
		delta = -1
	}

	ks := m.getKey(pev.Phys)
	for _, k := range ks.Members() {
		if !m.counts.Adjust(k, delta) {
			return nil, false
		}
	}

	if pev.Press {
		m.pressed[pev.Phys] = true

		if !ks.Mods().Empty() {
			m.modPressedCount++
		}
	} else {
		delete(m.pressed, pev.Phys)

		if !ks.Mods().Empty() {
			m.modPressedCount--
		}
	}

	cur := m.aggregate()
	m.cur = cur

	modsReleased := !cur.Mods().IsSuperset(prev.Mods())

	if modsReleased && m.pending {
		events = append(events, prev)
		m.pending = false
	}

	switch {
	case modsReleased || !cur.Regular().Equal(prev.Regular()):
		events = append(events, cur)
		m.pending = false
	case !cur.Equal(prev):
		m.pending = true
	}

	return events, true
}

func (m *Model) aggregate() kc.KeySet {
	var s kc.KeySet
	for _, k := range m.counts.Members() {
		s = s.Add(k)
	}

	return s
}

// Valid peeks whether applying pev would be legal: it would not drive any
// keycode's press count negative, would not exceed the pressed/mod/idle
// caps, and is not a release without a matching press.
func (m *Model) Valid(pev kc.PhysEv) bool {
	if !m.structurallyValid(pev) {
		return false
	}

	trial := m.Clone()

	events, ok := trial.applyCoalescing(pev)
	if !ok {
		return false
	}

	return len(events) != 0 || trial.idleSinceEmission+1 <= m.maxPhysIdle
}

// Event applies pev, returning the key-sets it emits (zero, one, or two —
// see applyCoalescing) and whether pev was legal. On failure m is left
// unmodified.
func (m *Model) Event(pev kc.PhysEv) ([]kc.KeySet, bool) {
	if !m.structurallyValid(pev) {
		return nil, false
	}

	trial := m.Clone()

	events, ok := trial.applyCoalescing(pev)
	if !ok {
		return nil, false
	}

	if len(events) == 0 {
		if trial.idleSinceEmission+1 > m.maxPhysIdle {
			return nil, false
		}

		trial.idleSinceEmission++
	} else {
		trial.idleSinceEmission = 0
	}

	*m = *trial

	return events, true
}

// StateKey returns a canonical string encoding of m's state, excluding any
// accumulated cost, for use as a priority-queue dedup key: two path nodes
// with equal (StateKey, CorpusIdx) represent the same search state.
func (m *Model) StateKey() string {
	key := make([]byte, 0, 64)
	key = appendInt(key, m.activeLayer)
	key = append(key, '|')

	for _, k := range m.counts.Members() {
		key = appendInt(key, int(k))
		key = append(key, ':')
		key = appendInt(key, m.counts.Count(k))
		key = append(key, ',')
	}

	key = append(key, '|')

	if m.pending {
		key = append(key, 'P')
	}

	key = append(key, '|')
	key = appendInt(key, m.modPressedCount)

	return string(key)
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}

	if n < 0 {
		b = append(b, '-')
		n = -n
	}

	start := len(b)
	for n > 0 {
		b = append(b, byte('0'+n%10))
		n /= 10
	}

	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return b
}

// KeyEvEdges enumerates candidate physical-event sequences the path finder
// should try in order to make progress towards target. Every edge here is
// a single PhysEv; deferred mod-only presses and immediate emissions are
// both reachable by chaining single-PhysEv edges across successive path
// nodes, so there is no need to pre-compute multi-step sequences.
func (m *Model) KeyEvEdges(target kc.KeyEv) [][]kc.PhysEv {
	layerKeys := m.lay.Layers[m.activeLayer].Keys

	edges := make([][]kc.PhysEv, 0, len(layerKeys))

	for p, ks := range layerKeys {
		if ks.Empty() {
			continue
		}

		phys := uint32(p)

		if target.Press {
			if m.pressed[phys] {
				continue
			}

			if ks.Intersects(target.Key) || !ks.Mods().Empty() {
				edges = append(edges, []kc.PhysEv{{Phys: phys, Press: true}})
			}

			continue
		}

		if m.pressed[phys] {
			edges = append(edges, []kc.PhysEv{{Phys: phys, Press: false}})
		}
	}

	return edges
}
