package bpe

import (
	"container/heap"
)

type qpair struct {
	idx   uint16
	count uint32
}

// better reports whether a ranks ahead of b: higher count first, then lower pair index.
func (a qpair) better(b qpair) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.idx < b.idx
}

// qpairHeap is a min-heap of qpair keyed on rank: the worst kept candidate sits at the root.
// We use a min-heap to maintain top-K elements efficiently.
type qpairHeap []qpair

// Len implements heap.Interface and returns the number of elements.
func (h qpairHeap) Len() int { return len(h) }

// Less implements heap.Interface ordering by ascending count, breaking ties
// by larger pair index so the root is always the weakest candidate.
func (h qpairHeap) Less(i, j int) bool { return h[j].better(h[i]) }

// Swap implements heap.Interface swap.
func (h qpairHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push implements heap.Interface push.
func (h *qpairHeap) Push(x any) { *h = append(*h, x.(qpair)) }

// Pop implements heap.Interface pop.
func (h *qpairHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// selectPairs returns up to k pairs whose count exceeds bpeMinPairCount,
// best first: descending count, ties broken by ascending pair index.
func selectPairs(c *counters, k int) []qpair {
	if k <= 0 {
		return nil
	}

	// This is O(n log k) instead of O(n log n) where k<=255, n=distinct pairs
	h := make(qpairHeap, 0, k+1)
	heap.Init(&h)

	for _, idx := range c.pairList {
		candidate := qpair{idx: idx, count: c.pairs[idx]}
		if candidate.count <= bpeMinPairCount {
			continue
		}
		if len(h) < k {
			heap.Push(&h, candidate)
		} else if candidate.better(h[0]) {
			// Replace minimum with this better candidate
			h[0] = candidate
			heap.Fix(&h, 0)
		}
	}

	// Popping yields worst first; fill from the back
	list := make([]qpair, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		list[i] = heap.Pop(&h).(qpair)
	}
	return list
}
