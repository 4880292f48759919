package algo

import (
	"container/heap"
	"sort"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// compareConflicts gives the lexicographic order over a conflict list used
// as a CT-node ordering tie-break: element-wise by (kind, agent1, agent2,
// time, pos); when one list is a prefix of the other, the shorter one first.
func compareConflicts(a, b []core.Conflict) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareOneConflict(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareOneConflict(a, b core.Conflict) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	if a.Agent1 != b.Agent1 {
		return int(a.Agent1 - b.Agent1)
	}
	if a.Agent2 != b.Agent2 {
		return int(a.Agent2 - b.Agent2)
	}
	if a.Time != b.Time {
		return a.Time - b.Time
	}
	if a.Pos != b.Pos {
		if a.Pos.Less(b.Pos) {
			return -1
		}
		return 1
	}
	return 0
}

// comparePaths gives the lexicographic order over the agent-ordered tuple
// of paths: by ascending agent id, by path length, then cell-by-cell.
func comparePaths(a, b *CTNode) int {
	ids := a.sortedAgentIDs()
	for _, id := range ids {
		pa, pb := a.Paths[id], b.Paths[id]
		if len(pa) != len(pb) {
			return len(pa) - len(pb)
		}
		for i := range pa {
			if pa[i] != pb[i] {
				if pa[i].Less(pb[i]) {
					return -1
				}
				return 1
			}
		}
	}
	return 0
}

func (n *CTNode) sortedAgentIDs() []core.AgentID {
	ids := make([]core.AgentID, 0, len(n.Agents))
	for _, a := range n.Agents {
		ids = append(ids, a.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ctLess is the total strict order of CT open nodes (§3): cost, then
// conflicts lexicographically, then paths lexicographically.
func ctLess(a, b *CTNode) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if c := compareConflicts(a.Conflicts, b.Conflicts); c != 0 {
		return c < 0
	}
	return comparePaths(a, b) < 0
}

// ctFocalLess is the CT focal ordering (§3): len(conflicts), then cost,
// then conflicts, then paths.
func ctFocalLess(a, b *CTNode) bool {
	if len(a.Conflicts) != len(b.Conflicts) {
		return len(a.Conflicts) < len(b.Conflicts)
	}
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if c := compareConflicts(a.Conflicts, b.Conflicts); c != 0 {
		return c < 0
	}
	return comparePaths(a, b) < 0
}

// ctOpenHeap orders CT nodes by ctLess (single-open variants: CBS, LBCBS).
type ctOpenHeap []*CTNode

func (h ctOpenHeap) Len() int            { return len(h) }
func (h ctOpenHeap) Less(i, j int) bool  { return ctLess(h[i], h[j]) }
func (h ctOpenHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ctOpenHeap) Push(x interface{}) { *h = append(*h, x.(*CTNode)) }
func (h *ctOpenHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// ctFocalHeap orders CT nodes by ctFocalLess (open+focal variants).
type ctFocalHeap []*CTNode

func (h ctFocalHeap) Len() int            { return len(h) }
func (h ctFocalHeap) Less(i, j int) bool  { return ctFocalLess(h[i], h[j]) }
func (h ctFocalHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ctFocalHeap) Push(x interface{}) { *h = append(*h, x.(*CTNode)) }
func (h *ctFocalHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

var _ = heap.Interface(&ctOpenHeap{})
var _ = heap.Interface(&ctFocalHeap{})

// fMinSum returns Σ f_min_i over a CT node's agents; the bound key of the
// ECBS-family variants, whose lower bound is this sum rather than the node's
// own cost.
func fMinSum(n *CTNode) int {
	sum := 0
	for _, v := range n.FMin {
		sum += v
	}
	return sum
}
