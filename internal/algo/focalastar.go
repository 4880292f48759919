package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// FocalAStarBounded is §4.2.2: the same expansion as ConstrainedAStar, but
// any neighbor with f_open exceeding boundCost is pruned, and the ordering
// adds f_focal (the running sum of hFocal along the incoming trace edge) as
// the primary key. Returns (path, f_open of the accepted node).
func FocalAStarBounded(g *gridmap.Grid, agent core.Agent, constraints []core.Constraint, minPathLength, boundCost int, others map[core.AgentID]core.Path, st *stats.Stats) (core.Path, int, bool) {
	horizon := core.ConstraintHorizon(constraints)

	open := &focalHeap{}
	heap.Init(open)
	closed := make(map[closedKey]bool)
	seen := make(map[openDedupKey]bool)
	trace := make(map[traceKey]traceEntry)

	startH := g.H(agent.Goal, agent.Start.Row, agent.Start.Col)
	heap.Push(open, focalNode{pos: agent.Start, fFocal: 0, fOpen: startH, g: 0})
	seen[openDedupKey{agent.Start, 0}] = true

	for open.Len() > 0 {
		cur := heap.Pop(open).(focalNode)
		st.LowLevelFocalExpansions++

		timeStep := cur.g
		exceeded := timeStep > horizon
		closed[closedKey{cur.pos, timeStep}] = true

		if cur.pos == agent.Goal && cur.g > minPathLength {
			return reconstructPath(trace, cur.pos, cur.g), cur.fOpen, true
		}

		tentativeG := cur.g + 1
		tentativeTime := timeStep
		if !exceeded {
			tentativeTime++
		}

		for _, nb := range g.Neighbors(cur.pos.Row, cur.pos.Col, !exceeded) {
			if closed[closedKey{nb, tentativeTime}] {
				continue
			}
			if core.AnyViolated(constraints, cur.pos, nb, tentativeG) {
				continue
			}
			fOpen := tentativeG + g.H(agent.Goal, nb.Row, nb.Col)
			if fOpen > boundCost {
				continue
			}
			key := openDedupKey{nb, tentativeG}
			if seen[key] {
				continue
			}
			seen[key] = true
			fFocal := cur.fFocal + hFocal(agent.ID, cur.pos, nb, tentativeG, others)
			heap.Push(open, focalNode{pos: nb, fFocal: fFocal, fOpen: fOpen, g: tentativeG})
			trace[traceKey{nb, tentativeG}] = traceEntry{cur.pos, cur.g}
		}
	}
	return nil, 0, false
}

// DoubleSearch is §4.2.4 (DECBS low-level): run ConstrainedAStar to obtain
// f_min, then FocalAStarBounded with opt_cost = f_min*w. Decouples the
// bound computation from the focal pass.
func DoubleSearch(g *gridmap.Grid, agent core.Agent, constraints []core.Constraint, minPathLength int, subopt float64, others map[core.AgentID]core.Path, st *stats.Stats) (core.Path, int, bool) {
	_, fMin, ok := ConstrainedAStar(g, agent, constraints, minPathLength, st)
	if !ok {
		return nil, 0, false
	}
	boundCost := int(float64(fMin) * subopt)
	path, _, ok := FocalAStarBounded(g, agent, constraints, minPathLength, boundCost, others, st)
	if !ok {
		return nil, 0, false
	}
	return path, fMin, true
}

// dualNode is the shared mutable payload for one low-level search state
// referenced by both the open and focal indexes, per §9's recommended
// strategy ("reference-counted handles to a mutable payload"). f_focal is
// the only field that mutates after insertion.
type dualNode struct {
	pos    core.Cell
	g      int
	fOpen  int
	fFocal int
}

// FocalAStarDualQueue is §4.2.3: maintains a monotone open queue (providing
// f_min) and a focal queue bounded by f_open <= f_min*w, ordered by
// f_focal. Returns (path, f_min) where f_min is the open lower bound at
// acceptance time, not necessarily the path's own cost.
func FocalAStarDualQueue(g *gridmap.Grid, agent core.Agent, constraints []core.Constraint, minPathLength int, subopt float64, others map[core.AgentID]core.Path, st *stats.Stats) (core.Path, int, bool) {
	horizon := core.ConstraintHorizon(constraints)

	open := &openHeap{}
	focal := &focalHeap{}
	heap.Init(open)
	heap.Init(focal)

	// expandedOpen marks nodes already popped via focal (and thus removed
	// from the open index); openHeap pops are lazily discarded if stale.
	expandedOpen := make(map[openDedupKey]bool)
	closed := make(map[closedKey]bool)
	seen := make(map[openDedupKey]bool)
	trace := make(map[traceKey]traceEntry)
	payload := make(map[openDedupKey]*dualNode)

	startH := g.H(agent.Goal, agent.Start.Row, agent.Start.Col)
	startKey := openDedupKey{agent.Start, 0}
	startPayload := &dualNode{pos: agent.Start, g: 0, fOpen: startH, fFocal: 0}
	payload[startKey] = startPayload
	heap.Push(open, openNode{pos: agent.Start, fOpen: startH, g: 0, timeStep: 0})
	heap.Push(focal, focalNode{pos: agent.Start, fFocal: 0, fOpen: startH, g: 0})
	seen[startKey] = true

	fMin := startH

	peekOpenMin := func() (int, bool) {
		for open.Len() > 0 {
			top := (*open)[0]
			if expandedOpen[openDedupKey{top.pos, top.g}] {
				heap.Pop(open)
				continue
			}
			return top.fOpen, true
		}
		return 0, false
	}

	for focal.Len() > 0 {
		cur := heap.Pop(focal).(focalNode)
		curKey := openDedupKey{cur.pos, cur.g}
		st.LowLevelFocalExpansions++

		expandedOpen[curKey] = true
		if m, ok := peekOpenMin(); ok && m > fMin {
			fMin = m
		}

		timeStep := cur.g
		exceeded := timeStep > horizon
		closed[closedKey{cur.pos, timeStep}] = true

		if cur.pos == agent.Goal && cur.g > minPathLength {
			return reconstructPath(trace, cur.pos, cur.g), fMin, true
		}

		tentativeG := cur.g + 1
		tentativeTime := timeStep
		if !exceeded {
			tentativeTime++
		}

		for _, nb := range g.Neighbors(cur.pos.Row, cur.pos.Col, !exceeded) {
			if closed[closedKey{nb, tentativeTime}] {
				continue
			}
			if core.AnyViolated(constraints, cur.pos, nb, tentativeG) {
				continue
			}
			fOpen := tentativeG + g.H(agent.Goal, nb.Row, nb.Col)
			fFocal := cur.fFocal + hFocal(agent.ID, cur.pos, nb, tentativeG, others)
			key := openDedupKey{nb, tentativeG}

			if !seen[key] {
				seen[key] = true
				payload[key] = &dualNode{pos: nb, g: tentativeG, fOpen: fOpen, fFocal: fFocal}
				heap.Push(open, openNode{pos: nb, fOpen: fOpen, g: tentativeG, timeStep: tentativeTime})
				trace[traceKey{nb, tentativeG}] = traceEntry{cur.pos, cur.g}
				if float64(fOpen) <= float64(fMin)*subopt {
					heap.Push(focal, focalNode{pos: nb, fFocal: fFocal, fOpen: fOpen, g: tentativeG})
				}
				continue
			}
			// Seen before: update the shared payload in place if this trace
			// offers a lower f_focal (the focal-open coupling rule of §9).
			p := payload[key]
			if p != nil && fFocal < p.fFocal {
				p.fFocal = fFocal
				trace[traceKey{nb, tentativeG}] = traceEntry{cur.pos, cur.g}
				if float64(fOpen) <= float64(fMin)*subopt {
					heap.Push(focal, focalNode{pos: nb, fFocal: fFocal, fOpen: fOpen, g: tentativeG})
				}
			}
		}

		// Promote newly-in-range open nodes into focal if f_min advanced.
		if newMin, ok := peekOpenMin(); ok && newMin > fMin {
			for key, p := range payload {
				if expandedOpen[key] {
					continue
				}
				if float64(p.fOpen) > float64(fMin)*subopt && float64(p.fOpen) <= float64(newMin)*subopt {
					heap.Push(focal, focalNode{pos: p.pos, fFocal: p.fFocal, fOpen: p.fOpen, g: p.g})
				}
			}
			fMin = newMin
		}
	}
	return nil, 0, false
}

// AlternatingFocalAStar is §4.2.5 (ACBS low-level): as FocalAStarDualQueue,
// but each iteration alternates the source queue between focal and open.
// When expanding from open, the corresponding focal entry is removed by
// the same lazy-expansion bookkeeping used for the open side.
func AlternatingFocalAStar(g *gridmap.Grid, agent core.Agent, constraints []core.Constraint, minPathLength int, subopt float64, others map[core.AgentID]core.Path, st *stats.Stats) (core.Path, int, bool) {
	horizon := core.ConstraintHorizon(constraints)

	open := &openHeap{}
	focal := &focalHeap{}
	heap.Init(open)
	heap.Init(focal)

	expanded := make(map[openDedupKey]bool)
	closed := make(map[closedKey]bool)
	seen := make(map[openDedupKey]bool)
	trace := make(map[traceKey]traceEntry)
	payload := make(map[openDedupKey]*dualNode)

	startH := g.H(agent.Goal, agent.Start.Row, agent.Start.Col)
	startKey := openDedupKey{agent.Start, 0}
	payload[startKey] = &dualNode{pos: agent.Start, g: 0, fOpen: startH, fFocal: 0}
	heap.Push(open, openNode{pos: agent.Start, fOpen: startH, g: 0, timeStep: 0})
	heap.Push(focal, focalNode{pos: agent.Start, fFocal: 0, fOpen: startH, g: 0})
	seen[startKey] = true

	fMin := startH
	fromFocal := true

	expand := func(pos core.Cell, g_ int, fromFocalSide bool) (core.Path, int, bool, bool) {
		key := openDedupKey{pos, g_}
		if expanded[key] {
			return nil, 0, false, false // already handled by the other queue
		}
		expanded[key] = true
		if fromFocalSide {
			st.LowLevelFocalExpansions++
		} else {
			st.LowLevelOpenExpansions++
		}

		timeStep := g_
		exceeded := timeStep > horizon
		closed[closedKey{pos, timeStep}] = true

		if pos == agent.Goal && g_ > minPathLength {
			return reconstructPath(trace, pos, g_), fMin, true, true
		}

		tentativeG := g_ + 1
		tentativeTime := timeStep
		if !exceeded {
			tentativeTime++
		}
		for _, nb := range g.Neighbors(pos.Row, pos.Col, !exceeded) {
			if closed[closedKey{nb, tentativeTime}] {
				continue
			}
			if core.AnyViolated(constraints, pos, nb, tentativeG) {
				continue
			}
			fOpen := tentativeG + g.H(agent.Goal, nb.Row, nb.Col)
			fFocal := payload[key].fFocal + hFocal(agent.ID, pos, nb, tentativeG, others)
			nk := openDedupKey{nb, tentativeG}
			if !seen[nk] {
				seen[nk] = true
				payload[nk] = &dualNode{pos: nb, g: tentativeG, fOpen: fOpen, fFocal: fFocal}
				heap.Push(open, openNode{pos: nb, fOpen: fOpen, g: tentativeG, timeStep: tentativeTime})
				trace[traceKey{nb, tentativeG}] = traceEntry{pos, g_}
				if float64(fOpen) <= float64(fMin)*subopt {
					heap.Push(focal, focalNode{pos: nb, fFocal: fFocal, fOpen: fOpen, g: tentativeG})
				}
			} else if p := payload[nk]; p != nil && fFocal < p.fFocal {
				p.fFocal = fFocal
				trace[traceKey{nb, tentativeG}] = traceEntry{pos, g_}
				if float64(fOpen) <= float64(fMin)*subopt {
					heap.Push(focal, focalNode{pos: nb, fFocal: fFocal, fOpen: fOpen, g: tentativeG})
				}
			}
		}
		return nil, 0, false, true
	}

	for open.Len() > 0 || focal.Len() > 0 {
		var handled bool
		var path core.Path
		var fm int
		var ok bool

		if fromFocal && focal.Len() > 0 {
			cur := heap.Pop(focal).(focalNode)
			if m, mok := peekOpenMinFor(open, expanded); mok && m > fMin {
				fMin = m
			}
			path, fm, ok, handled = expand(cur.pos, cur.g, true)
		} else if !fromFocal && open.Len() > 0 {
			cur := heap.Pop(open).(openNode)
			path, fm, ok, handled = expand(cur.pos, cur.g, false)
		}
		fromFocal = !fromFocal

		if handled && ok {
			return path, fm, true
		}

		// Promote newly-in-range open nodes into focal as f_min advances.
		if newMin, mok := peekOpenMinFor(open, expanded); mok && newMin > fMin {
			for key, p := range payload {
				if expanded[key] {
					continue
				}
				if float64(p.fOpen) > float64(fMin)*subopt && float64(p.fOpen) <= float64(newMin)*subopt {
					heap.Push(focal, focalNode{pos: p.pos, fFocal: p.fFocal, fOpen: p.fOpen, g: p.g})
				}
			}
			fMin = newMin
		}
	}
	return nil, 0, false
}

func peekOpenMinFor(open *openHeap, expanded map[openDedupKey]bool) (int, bool) {
	for open.Len() > 0 {
		top := (*open)[0]
		if expanded[openDedupKey{top.pos, top.g}] {
			heap.Pop(open)
			continue
		}
		return top.fOpen, true
	}
	return 0, false
}
