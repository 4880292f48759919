package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// ctKeyedNode pairs a CT node with the scalar bound key its frontier is
// primarily ordered by (CT cost for HBCBS/BCBS, Σf_min_i for the
// ECBS-family), with ctLess as the tie-break.
type ctKeyedNode struct {
	node *CTNode
	key  int
}

type ctKeyedHeap []ctKeyedNode

func (h ctKeyedHeap) Len() int      { return len(h) }
func (h ctKeyedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h ctKeyedHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return ctLess(h[i].node, h[j].node)
}
func (h *ctKeyedHeap) Push(x interface{}) { *h = append(*h, x.(ctKeyedNode)) }
func (h *ctKeyedHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// expandNode resolves one high-level expansion of node: selects a
// conflict, builds up to two children, applies bypass if it is active and
// a child qualifies, and returns either (bypassedNode, nil) to replace
// node in place, or (nil, children) to branch. children may have 1 or 2
// elements (a side can be individually unsolvable).
func expandNode(node *CTNode, solve LowLevelSolve, needMDD bool, buildMDD MDDBuilder, opts Options, bypass bypassFunc) (*CTNode, []*CTNode) {
	conflict := selectConflict(node.Conflicts, opts.PrioritizeConflicts)

	type attempt struct {
		resolveFirst bool
		agent        core.AgentID
	}
	attempts := []attempt{{true, conflict.Agent1}, {false, conflict.Agent2}}
	if conflict.Kind == core.TargetConflict {
		// Mirror UpdateConstraint: resolveFirst re-plans the owner,
		// !resolveFirst the other agent of the pair.
		interloper := conflict.Agent1
		if interloper == conflict.Owner {
			interloper = conflict.Agent2
		}
		attempts = []attempt{{true, conflict.Owner}, {false, interloper}}
	}

	var children []*CTNode
	for _, at := range attempts {
		child, ok := UpdateConstraint(node, conflict, at.resolveFirst, solve, needMDD, buildMDD, opts.TargetReasoning)
		if !ok {
			continue
		}
		if opts.BypassConflicts && bypass(node, child, at.agent, conflict) {
			return BypassChild(node, child, at.agent), nil
		}
		children = append(children, child)
	}
	return nil, children
}

// runSingleOpenDriver implements the single-open-queue skeleton shared by
// CBS and LBCBS: a plain cost-ordered frontier, no focal list.
func runSingleOpenDriver(inst *Instance, solve LowLevelSolve, needMDD bool, buildMDD MDDBuilder, opts Options, bypass bypassFunc, st *stats.Stats) (*core.Solution, bool) {
	root, ok := NewRootCTNode(inst.Agents, solve, needMDD, buildMDD, opts.TargetReasoning)
	if !ok {
		return nil, false
	}

	open := &ctOpenHeap{}
	heap.Init(open)
	heap.Push(open, root)

	for open.Len() > 0 {
		if inst.ctx().Err() != nil {
			return nil, false
		}
		node := heap.Pop(open).(*CTNode)
		if len(node.Conflicts) == 0 {
			return solutionFrom(node), true
		}
		st.HighLevelExpansions++

		bypassed, children := expandNode(node, solve, needMDD, buildMDD, opts, bypass)
		if bypassed != nil {
			heap.Push(open, bypassed)
			continue
		}
		for _, c := range children {
			heap.Push(open, c)
		}
	}
	return nil, false
}

// runFocalDriver implements the open+focal skeleton shared by HBCBS, BCBS,
// ECBS, DECBS and ACBS. boundKey supplies the scalar the open queue and the
// focal bound window are keyed on (CT cost, or Σf_min_i for the
// ECBS-family); w is the focal bound factor (w_high for HBCBS/BCBS, w_low
// for the ECBS-family).
func runFocalDriver(inst *Instance, solve LowLevelSolve, needMDD bool, buildMDD MDDBuilder, opts Options, bypass bypassFunc, boundKey func(*CTNode) int, w float64, st *stats.Stats) (*core.Solution, bool) {
	root, ok := NewRootCTNode(inst.Agents, solve, needMDD, buildMDD, opts.TargetReasoning)
	if !ok {
		return nil, false
	}

	open := &ctKeyedHeap{}
	focal := &ctFocalHeap{}
	heap.Init(open)
	heap.Init(focal)
	expanded := make(map[*CTNode]bool)

	heap.Push(open, ctKeyedNode{node: root, key: boundKey(root)})
	heap.Push(focal, root)
	fMin := float64(boundKey(root))

	for focal.Len() > 0 {
		if inst.ctx().Err() != nil {
			return nil, false
		}
		node := heap.Pop(focal).(*CTNode)
		expanded[node] = true

		if m, ok := peekOpenKeyMin(open, expanded); ok && m > fMin {
			fMin = m
		}

		if len(node.Conflicts) == 0 {
			return solutionFrom(node), true
		}
		st.HighLevelExpansions++

		bypassed, children := expandNode(node, solve, needMDD, buildMDD, opts, bypass)
		var produced []*CTNode
		if bypassed != nil {
			produced = []*CTNode{bypassed}
		} else {
			produced = children
		}

		for _, c := range produced {
			k := boundKey(c)
			heap.Push(open, ctKeyedNode{node: c, key: k})
			if float64(k) <= fMin*w {
				heap.Push(focal, c)
			}
		}

		// Focal maintenance: promote newly-in-range open nodes if the open
		// minimum advanced.
		if newMin, ok := peekOpenKeyMin(open, expanded); ok && newMin > fMin {
			oldMin := fMin
			for _, kn := range *open {
				if expanded[kn.node] {
					continue
				}
				k := float64(kn.key)
				if k > oldMin*w && k <= newMin*w {
					heap.Push(focal, kn.node)
				}
			}
			fMin = newMin
		}
	}
	return nil, false
}

func peekOpenKeyMin(open *ctKeyedHeap, expanded map[*CTNode]bool) (float64, bool) {
	for open.Len() > 0 {
		top := (*open)[0]
		if expanded[top.node] {
			heap.Pop(open)
			continue
		}
		return float64(top.key), true
	}
	return 0, false
}
