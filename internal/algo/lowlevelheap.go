package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// openNode is one entry of the low-level open set: {pos, f_open, g,
// time_step}, ordered by f_open ascending, then g descending (prefer the
// longer partial path, i.e. later time), then pos lexicographically.
type openNode struct {
	pos      core.Cell
	fOpen    int
	g        int
	timeStep int
}

func openLess(a, b openNode) bool {
	if a.fOpen != b.fOpen {
		return a.fOpen < b.fOpen
	}
	if a.g != b.g {
		return a.g > b.g
	}
	return a.pos.Less(b.pos)
}

type openHeap []openNode

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return openLess(h[i], h[j]) }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x interface{}) { *h = append(*h, x.(openNode)) }
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// openKey is a (pos, g, timeStep) identity for an open-set entry. The
// searches in this package do not use it: their symmetric-path dedup is
// keyed on openDedupKey (pos, g), since f_open is a deterministic function
// of (pos, g) under a uniform-cost grid.
type openKey struct {
	pos      core.Cell
	g        int
	timeStep int
}

// closedKey is the low-level closed-set key: (pos, time_step).
type closedKey struct {
	pos      core.Cell
	timeStep int
}

// focalNode is one entry of the low-level focal set: indexed by
// (f_focal, f_open, g desc, pos).
type focalNode struct {
	pos     core.Cell
	fFocal  int
	fOpen   int
	g       int
}

func focalLess(a, b focalNode) bool {
	if a.fFocal != b.fFocal {
		return a.fFocal < b.fFocal
	}
	if a.fOpen != b.fOpen {
		return a.fOpen < b.fOpen
	}
	if a.g != b.g {
		return a.g > b.g
	}
	return a.pos.Less(b.pos)
}

type focalHeap []focalNode

func (h focalHeap) Len() int            { return len(h) }
func (h focalHeap) Less(i, j int) bool  { return focalLess(h[i], h[j]) }
func (h focalHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *focalHeap) Push(x interface{}) { *h = append(*h, x.(focalNode)) }
func (h *focalHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

var _ = heap.Interface(&openHeap{})
var _ = heap.Interface(&focalHeap{})
