package algo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/algo"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

const threeByThree = "type test\nheight 3\nwidth 3\nmap\n...\n...\n...\n"

func mustGrid(t *testing.T, body string) *gridmap.Grid {
	t.Helper()
	g, err := gridmap.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return g
}

// Scenario 1: single agent, unconstrained.
func TestConstrainedAStarUnconstrained(t *testing.T) {
	g := mustGrid(t, threeByThree)
	agent := core.Agent{ID: 0, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 0, Col: 0}}
	g.PrecomputeHeuristics([]core.Agent{agent})

	path, fMin, ok := algo.ConstrainedAStar(g, agent, nil, 0, stats.New())
	require.True(t, ok)
	require.Equal(t, 5, len(path))
	require.Equal(t, 4, fMin)
	require.Equal(t, agent.Start, path[0])
	require.Equal(t, agent.Goal, path[len(path)-1])
}

// Scenario 2: single agent, one vertex constraint.
func TestConstrainedAStarSingleVertexConstraint(t *testing.T) {
	g := mustGrid(t, threeByThree)
	agent := core.Agent{ID: 0, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 0, Col: 0}}
	g.PrecomputeHeuristics([]core.Agent{agent})

	cs := []core.Constraint{core.VertexConstraint(core.Cell{Row: 0, Col: 2}, 2, false)}
	path, _, ok := algo.ConstrainedAStar(g, agent, cs, 0, stats.New())
	require.True(t, ok)
	require.Equal(t, 5, len(path))
	for i, c := range path {
		require.False(t, core.AnyViolated(cs, path[max(0, i-1)], c, i))
	}
}

// Scenario 3: single agent, two vertex constraints forcing a detour.
func TestConstrainedAStarTwoVertexConstraints(t *testing.T) {
	g := mustGrid(t, threeByThree)
	agent := core.Agent{ID: 0, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 0, Col: 0}}
	g.PrecomputeHeuristics([]core.Agent{agent})

	cs := []core.Constraint{
		core.VertexConstraint(core.Cell{Row: 0, Col: 2}, 2, false),
		core.VertexConstraint(core.Cell{Row: 2, Col: 0}, 2, false),
	}
	path, _, ok := algo.ConstrainedAStar(g, agent, cs, 0, stats.New())
	require.True(t, ok)
	require.Equal(t, 6, len(path))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func TestHeuristicMonotonicity(t *testing.T) {
	g := mustGrid(t, threeByThree)
	goal := core.Cell{Row: 1, Col: 1}
	g.PrecomputeHeuristics([]core.Agent{{Start: core.Cell{}, Goal: goal}})

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for _, nb := range g.Neighbors(r, c, false) {
				require.LessOrEqual(t, g.H(goal, r, c), g.H(goal, nb.Row, nb.Col)+1)
			}
		}
	}
}
