package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
)

// BuildMDD constructs the multi-valued decision diagram of §4.2.7 for
// agent under constraints, given its already-known optimal cost k.
func BuildMDD(g *gridmap.Grid, agent core.Agent, constraints []core.Constraint, k int) *core.MDD {
	layers := make([]map[core.Cell]*core.MDDNode, k+1)
	for d := range layers {
		layers[d] = make(map[core.Cell]*core.MDDNode)
	}
	layers[0][agent.Start] = &core.MDDNode{}

	for d := 0; d < k; d++ {
		for p := range layers[d] {
			for _, m := range g.Neighbors(p.Row, p.Col, true) {
				if core.AnyViolated(constraints, p, m, d+1) {
					continue
				}
				if g.H(agent.Goal, m.Row, m.Col) > k-(d+1) {
					continue
				}
				child, ok := layers[d+1][m]
				if !ok {
					child = &core.MDDNode{}
					layers[d+1][m] = child
				}
				child.Parents = append(child.Parents, p)
				layers[d][p].Children = append(layers[d][p].Children, m)
			}
		}
	}

	// Backward prune: drop any cell whose child links no longer point to a
	// surviving cell at d+1.
	for d := k - 1; d >= 0; d-- {
		for p, node := range layers[d] {
			alive := node.Children[:0]
			for _, c := range node.Children {
				if _, ok := layers[d+1][c]; ok {
					alive = append(alive, c)
				}
			}
			node.Children = alive
			if len(alive) == 0 && d < k {
				delete(layers[d], p)
			}
		}
	}

	return &core.MDD{Layers: layers}
}
