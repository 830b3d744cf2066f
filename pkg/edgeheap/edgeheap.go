// Package edgeheap provides a min-priority queue of weighted candidate edges.
//
// The heap orders edges by ascending weight. Edges with equal weight come out
// in the order they were inserted, so a sequence of inserts always yields the
// same extraction order. A Heap is transient, per-search state: fill it, drain
// it, then Clear and reuse it.
//
//	var h edgeheap.Heap
//	h.Insert(graph.Edge{From: 0, To: 1, Weight: 12})
//	h.Insert(graph.Edge{From: 0, To: 2, Weight: 7})
//	e, _ := h.ExtractMin() // 0 -> 2
package edgeheap

import (
	"container/heap"
	"errors"

	"github.com/matzehuels/cityforest/pkg/graph"
)

// ErrEmpty is returned when extracting from or peeking at an empty heap.
var ErrEmpty = errors.New("edgeheap: empty")

type item struct {
	edge graph.Edge
	seq  uint64
}

type items []item

func (q items) Len() int { return len(q) }
func (q items) Less(i, j int) bool {
	if q[i].edge.Weight != q[j].edge.Weight {
		return q[i].edge.Weight < q[j].edge.Weight
	}
	return q[i].seq < q[j].seq
}
func (q items) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *items) Push(x any)   { *q = append(*q, x.(item)) }
func (q *items) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Heap is a min-heap of edges keyed by weight. The zero value is an empty heap.
// Duplicates are not suppressed.
type Heap struct {
	q   items
	seq uint64
}

// Insert adds e to the heap.
func (h *Heap) Insert(e graph.Edge) {
	heap.Push(&h.q, item{edge: e, seq: h.seq})
	h.seq++
}

// ExtractMin removes and returns the lightest edge. Among equal weights the
// earliest inserted edge wins. It returns ErrEmpty when the heap has no edges.
func (h *Heap) ExtractMin() (graph.Edge, error) {
	if len(h.q) == 0 {
		return graph.Edge{}, ErrEmpty
	}
	return heap.Pop(&h.q).(item).edge, nil
}

// Peek returns the lightest edge without removing it.
func (h *Heap) Peek() (graph.Edge, error) {
	if len(h.q) == 0 {
		return graph.Edge{}, ErrEmpty
	}
	return h.q[0].edge, nil
}

// Len returns the number of edges in the heap.
func (h *Heap) Len() int { return len(h.q) }

// Clear discards every edge. The heap can be reused afterwards.
func (h *Heap) Clear() {
	h.q = h.q[:0]
	h.seq = 0
}
