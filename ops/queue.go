// Package ops implements the four local mesh operators the driver
// sequences each iteration: split, collapse, flip and smooth. Each operator
// queries predicates and sizing and mutates the mesh through its exported
// surgery primitives.
package ops

import (
	"container/heap"

	"github.com/notargets/tetremesh/types"
)

type queueEntry struct {
	key      types.EdgeKey
	sqLength float64
}

// edgeHeap orders entries by squared length: descending when longest is a
// max-heap (split), ascending otherwise (collapse). Ties break on the
// edge's packed OrderKey for determinism, the same shape as the *Edge heap
// in a mesh-simplification border queue, generalized to hold a plain key
// instead of an object pointer since our edges are transient EdgeKeys, not
// long-lived heap-resident structs.
type edgeHeap struct {
	entries []queueEntry
	longest bool
}

func (h edgeHeap) Len() int { return len(h.entries) }

func (h edgeHeap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.sqLength != b.sqLength {
		if h.longest {
			return a.sqLength > b.sqLength
		}
		return a.sqLength < b.sqLength
	}
	return a.key.OrderKey() < b.key.OrderKey()
}

func (h edgeHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *edgeHeap) Push(x any) { h.entries = append(h.entries, x.(queueEntry)) }

func (h *edgeHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// edgeQueue is the lazy-invalidation priority queue split and collapse each
// scan edges through. An edge may be pushed more than once as its length
// changes; pop always yields the entry the heap currently ranks highest,
// and callers are responsible for discarding an entry whose edge no longer
// exists or whose length has since moved off threshold.
type edgeQueue struct {
	h edgeHeap
}

func newEdgeQueue(longest bool) *edgeQueue {
	q := &edgeQueue{h: edgeHeap{longest: longest}}
	heap.Init(&q.h)
	return q
}

func (q *edgeQueue) push(ek types.EdgeKey, sqLength float64) {
	heap.Push(&q.h, queueEntry{key: ek, sqLength: sqLength})
}

func (q *edgeQueue) pop() (types.EdgeKey, float64, bool) {
	if q.h.Len() == 0 {
		return types.EdgeKey{}, 0, false
	}
	e := heap.Pop(&q.h).(queueEntry)
	return e.key, e.sqLength, true
}
