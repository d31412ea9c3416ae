package solutionspace

import "github.com/cosy-synth/cosy/internal/tree"

// heapItem is one pending candidate tree, ordered by size for bucket
// scheduling.
type heapItem[C comparable] struct {
	tree *tree.Tree[C]
	size int
}

// treeHeap is a container/heap.Interface min-heap keyed by tree size.
type treeHeap[C comparable] []heapItem[C]

func (h treeHeap[C]) Len() int            { return len(h) }
func (h treeHeap[C]) Less(i, j int) bool  { return h[i].size < h[j].size }
func (h treeHeap[C]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *treeHeap[C]) Push(x any)         { *h = append(*h, x.(heapItem[C])) }

func (h *treeHeap[C]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
