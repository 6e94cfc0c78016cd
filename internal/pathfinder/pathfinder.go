// Package pathfinder implements the best-first search over
// (firmware-state × corpus-position) that the layout evaluator uses to
// score a candidate layout: the minimum-cost physical-event sequence
// reproducing the longest possible prefix of a target key-event stream.
package pathfinder

import (
	"container/heap"

	"github.com/layoutforge/qmkevolve/internal/firmware"
	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
)

// Result is the outcome of a search: the longest prefix of the target
// key-event stream reproduced, and the minimum cost achieving it.
type Result struct {
	KevsFound int
	Cost      uint64
}

type node struct {
	qmk       *firmware.Model
	corpusIdx int
	cost      uint64
}

// priority is the best-first search's f(n): accumulated cost plus a lower
// bound on the cost remaining (one per outstanding kev).
func (n *node) priority(total int) uint64 {
	return n.cost + uint64(total-n.corpusIdx)
}

type queueItem struct {
	n        *node
	priority uint64
	index    int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}

// stateKey combines a node's firmware-state key with its corpus position,
// the composite key push-increase dedup operates on.
func stateKey(n *node) string {
	return n.qmk.StateKey() + "#" + itoa(n.corpusIdx)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	neg := n < 0
	if neg {
		n = -n
	}

	var buf [20]byte

	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	if neg {
		i--
		buf[i] = '-'
	}

	return string(buf[i:])
}

// Find runs the best-first search described in SPEC_FULL.md §4.3 and
// returns the best (KevsFound, Cost) pair reached before the queue
// emptied or the full kevs stream was reproduced.
func Find(cfg layout.LayoutCfg, kevs []kc.KeyEv, cnst layout.Constants, l *layout.Layout) Result {
	start := &node{qmk: firmware.NewQmk(l, cnst)}

	pq := &priorityQueue{}
	heap.Init(pq)

	byKey := map[string]*queueItem{}

	push := func(n *node) {
		key := stateKey(n)
		p := n.priority(len(kevs))

		if existing, ok := byKey[key]; ok {
			if p < existing.priority {
				existing.n = n
				existing.priority = p
				heap.Fix(pq, existing.index)
			}

			return
		}

		item := &queueItem{n: n, priority: p}
		byKey[key] = item
		heap.Push(pq, item)
	}

	push(start)

	bestIdx, bestCost := 0, uint64(0)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		delete(byKey, stateKey(item.n))

		n := item.n

		if n.corpusIdx > bestIdx || (n.corpusIdx == bestIdx && n.cost < bestCost) {
			bestIdx, bestCost = n.corpusIdx, n.cost
		}

		if n.corpusIdx >= len(kevs) {
			return Result{KevsFound: n.corpusIdx, Cost: n.cost}
		}

		target := kevs[n.corpusIdx]

		for _, pevs := range n.qmk.KeyEvEdges(target) {
			succ, ok := tryPevs(cfg, kevs, n, pevs)
			if !ok {
				continue
			}

			push(succ)
		}
	}

	return Result{KevsFound: bestIdx, Cost: bestCost}
}

// tryPevs clones n's firmware state, applies pevs in order, and checks any
// emitted key events against kevs[n.corpusIdx:]. It succeeds (possibly with
// zero kevs consumed, for a deferred mod-only press) if every emission
// matches in order; it fails as soon as an emission diverges.
func tryPevs(cfg layout.LayoutCfg, kevs []kc.KeyEv, n *node, pevs []kc.PhysEv) (*node, bool) {
	qmk := n.qmk.Clone()
	idx := n.corpusIdx
	cost := n.cost

	for _, pev := range pevs {
		events, ok := qmk.Event(pev)
		if !ok {
			return nil, false
		}

		cost += cfg.Cost[pev.Phys]

		for _, ks := range events {
			if idx >= len(kevs) {
				return nil, false
			}

			want := kevs[idx]
			if !ks.Equal(want.Key) || pev.Press != want.Press {
				return nil, false
			}

			idx++
		}
	}

	return &node{qmk: qmk, corpusIdx: idx, cost: cost}, true
}
