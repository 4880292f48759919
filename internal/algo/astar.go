// Package algo implements the low-level time-expanded A*/focal-A* search,
// MDD construction, the high-level constraint-tree node, and the CBS
// family of high-level search drivers.
package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

type openDedupKey struct {
	pos core.Cell
	g   int
}

type traceKey struct {
	pos core.Cell
	g   int
}

type traceEntry struct {
	pos core.Cell
	g   int
}

// ConstrainedAStar is the constrained temporal A* of §4.2.1: time-expanded,
// honors constraints and a path-length lower bound, suppresses wait past
// the constraint horizon, and returns (path, f_min) where f_min equals the
// optimal cost under the given constraints.
func ConstrainedAStar(g *gridmap.Grid, agent core.Agent, constraints []core.Constraint, minPathLength int, st *stats.Stats) (core.Path, int, bool) {
	horizon := core.ConstraintHorizon(constraints)

	open := &openHeap{}
	heap.Init(open)
	closed := make(map[closedKey]bool)
	seen := make(map[openDedupKey]bool)
	trace := make(map[traceKey]traceEntry)

	startH := g.H(agent.Goal, agent.Start.Row, agent.Start.Col)
	heap.Push(open, openNode{pos: agent.Start, fOpen: startH, g: 0, timeStep: 0})
	seen[openDedupKey{agent.Start, 0}] = true

	for open.Len() > 0 {
		cur := heap.Pop(open).(openNode)
		st.LowLevelOpenExpansions++

		exceeded := cur.timeStep > horizon
		closed[closedKey{cur.pos, cur.timeStep}] = true

		if cur.pos == agent.Goal && cur.g > minPathLength {
			return reconstructPath(trace, cur.pos, cur.g), cur.fOpen, true
		}

		tentativeG := cur.g + 1
		tentativeTime := cur.timeStep
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
			key := openDedupKey{nb, tentativeG}
			if seen[key] {
				continue // symmetric-path pruning: already inserted once
			}
			seen[key] = true
			fOpen := tentativeG + g.H(agent.Goal, nb.Row, nb.Col)
			heap.Push(open, openNode{pos: nb, fOpen: fOpen, g: tentativeG, timeStep: tentativeTime})
			trace[traceKey{nb, tentativeG}] = traceEntry{cur.pos, cur.g}
		}
	}
	return nil, 0, false
}

// reconstructPath walks the trace backward from (goal, g) and reverses it.
func reconstructPath(trace map[traceKey]traceEntry, goal core.Cell, g int) core.Path {
	path := make(core.Path, g+1)
	pos, gi := goal, g
	for {
		path[gi] = pos
		if gi == 0 {
			break
		}
		prev := trace[traceKey{pos, gi}]
		pos, gi = prev.pos, prev.g
	}
	return path
}
