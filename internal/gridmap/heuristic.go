package gridmap

import (
	"container/heap"
	"math"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// PrecomputeHeuristics runs one backward Dijkstra per distinct agent goal
// over 4-connected moves (wait excluded, per the Map Oracle's contract) and
// caches the resulting distance table. Agents sharing a goal share a table.
func (g *Grid) PrecomputeHeuristics(agents []core.Agent) {
	for _, a := range agents {
		if _, ok := g.heuristic[a.Goal]; ok {
			continue
		}
		g.heuristic[a.Goal] = g.dijkstraFrom(a.Goal)
	}
}

const unreachable = math.MaxInt32

// dijkstraNode is a priority-queue entry of an index-tracked
// container/heap.Interface implementation ordered by distance.
type dijkstraNode struct {
	cell  core.Cell
	dist  int
	index int
}

type dijkstraHeap []*dijkstraNode

func (h dijkstraHeap) Len() int            { return len(h) }
func (h dijkstraHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h dijkstraHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *dijkstraHeap) Push(x interface{}) { n := x.(*dijkstraNode); n.index = len(*h); *h = append(*h, n) }
func (h *dijkstraHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// dijkstraFrom computes, for every passable cell, its shortest 4-connected
// distance to goal (distance from goal backward equals distance to goal
// forward since moves are symmetric and unit-cost).
func (g *Grid) dijkstraFrom(goal core.Cell) [][]int {
	dist := make([][]int, g.Height)
	for r := range dist {
		dist[r] = make([]int, g.Width)
		for c := range dist[r] {
			dist[r][c] = unreachable
		}
	}
	if !g.Passable(goal.Row, goal.Col) {
		return dist
	}

	dist[goal.Row][goal.Col] = 0
	h := &dijkstraHeap{{cell: goal, dist: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		cur := heap.Pop(h).(*dijkstraNode)
		if cur.dist > dist[cur.cell.Row][cur.cell.Col] {
			continue // stale entry, a shorter path was already relaxed in
		}
		for _, n := range g.Neighbors(cur.cell.Row, cur.cell.Col, false) {
			nd := cur.dist + 1
			if nd < dist[n.Row][n.Col] {
				dist[n.Row][n.Col] = nd
				heap.Push(h, &dijkstraNode{cell: n, dist: nd})
			}
		}
	}
	return dist
}
