package algo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/algo"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// Scenario 4: two agents on a head-on edge swap. With the 3x3 map both
// agents' naive shortest paths cross edge (0,2)<->(1,2) at t=2; CBS must
// resolve it without an edge swap.
func TestCBSResolvesEdgeSwap(t *testing.T) {
	g := mustGrid(t, threeByThree)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 1}, Goal: core.Cell{Row: 2, Col: 2}},
		{ID: 1, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 0, Col: 1}},
	}
	g.PrecomputeHeuristics(agents)

	solver := algo.NewCBS(g, algo.Options{})
	sol, ok := solver.Solve(&algo.Instance{Grid: g, Agents: agents}, stats.New())
	require.True(t, ok)
	// Both paths length 4 (cost 3) when possible, otherwise one is length 5.
	require.Contains(t, []int{6, 7}, sol.SoC())
	verifySolution(t, g, agents, sol)
}

// Scenario 5: target conflict. Agent 1's shortest path reaches its goal
// (0,2) at t=2, where agent 0's only cost-4 route passes. The optimal
// resolution (cost 7) delays agent 1 by one step: it arrives at t=3 and
// stays, and agent 0 is never at (0,2) after that.
func TestCBSTargetReasoning(t *testing.T) {
	body := "type test\nheight 5\nwidth 5\nmap\n.....\n.....\n.....\n.....\n.....\n"
	g := mustGrid(t, body)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}},
		{ID: 1, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 0, Col: 2}},
	}
	g.PrecomputeHeuristics(agents)

	solver := algo.NewCBS(g, algo.Options{TargetReasoning: true})
	sol, ok := solver.Solve(&algo.Instance{Grid: g, Agents: agents}, stats.New())
	require.True(t, ok)
	verifySolution(t, g, agents, sol)

	agent1Path := sol.Paths[1]
	for t2 := 3; t2 < len(agent1Path); t2++ {
		require.Equal(t, core.Cell{Row: 0, Col: 2}, agent1Path.At(t2))
	}
	agent0Path := sol.Paths[0]
	for t2 := 3; t2 < len(agent0Path); t2++ {
		require.NotEqual(t, core.Cell{Row: 0, Col: 2}, agent0Path.At(t2))
	}
}

// Regression: a target conflict where the higher-ID agent is the one
// parked at its goal (Owner == Agent2) must still terminate and resolve
// cleanly even with target reasoning off, the default.
func TestCBSTargetConflictTerminatesWithoutTargetReasoning(t *testing.T) {
	body := "type test\nheight 5\nwidth 5\nmap\n.....\n.....\n.....\n.....\n.....\n"
	g := mustGrid(t, body)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}},
		{ID: 1, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 0, Col: 2}},
	}
	g.PrecomputeHeuristics(agents)

	solver := algo.NewCBS(g, algo.Options{})
	sol, ok := solver.Solve(&algo.Instance{Grid: g, Agents: agents}, stats.New())
	require.True(t, ok)
	verifySolution(t, g, agents, sol)
}

// Scenario 6: bounded-suboptimal bound check for ECBS.
func TestECBSBoundedSuboptimality(t *testing.T) {
	body := "type test\nheight 5\nwidth 5\nmap\n.....\n.....\n.....\n.....\n.....\n"
	g := mustGrid(t, body)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 4, Col: 4}},
		{ID: 1, Start: core.Cell{Row: 0, Col: 4}, Goal: core.Cell{Row: 4, Col: 0}},
		{ID: 2, Start: core.Cell{Row: 4, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}},
	}
	g.PrecomputeHeuristics(agents)

	const wLow = 1.5
	solver := algo.NewECBS(g, algo.Options{WLow: wLow})
	sol, ok := solver.Solve(&algo.Instance{Grid: g, Agents: agents}, stats.New())
	require.True(t, ok)
	verifySolution(t, g, agents, sol)

	fMinSum := 0
	for _, a := range agents {
		_, fMin, ok := algo.ConstrainedAStar(g, a, nil, 0, stats.New())
		require.True(t, ok)
		fMinSum += fMin
	}
	require.LessOrEqual(t, float64(sol.SoC()), float64(fMinSum)*wLow)
}

// Regression: enabling bypass does not increase high-level expansions and
// does not change the final cost.
func TestBypassDoesNotIncreaseExpansions(t *testing.T) {
	body := "type test\nheight 5\nwidth 5\nmap\n.....\n.....\n.....\n.....\n.....\n"
	g := mustGrid(t, body)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 4, Col: 4}},
		{ID: 1, Start: core.Cell{Row: 4, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}},
		{ID: 2, Start: core.Cell{Row: 2, Col: 0}, Goal: core.Cell{Row: 2, Col: 4}},
	}
	g.PrecomputeHeuristics(agents)

	stNoBypass := stats.New()
	solNoBypass, ok := algo.NewCBS(g, algo.Options{}).Solve(&algo.Instance{Grid: g, Agents: agents}, stNoBypass)
	require.True(t, ok)

	stBypass := stats.New()
	solBypass, ok := algo.NewCBS(g, algo.Options{BypassConflicts: true}).Solve(&algo.Instance{Grid: g, Agents: agents}, stBypass)
	require.True(t, ok)

	require.Equal(t, solNoBypass.SoC(), solBypass.SoC())
	require.LessOrEqual(t, stBypass.HighLevelExpansions, stNoBypass.HighLevelExpansions)
}

// verifySolution checks the universal invariants of §8: start/goal
// endpoints, 4-adjacency/wait steps, and no vertex or edge conflicts across
// the padded joint timeline.
func verifySolution(t *testing.T, g *gridmap.Grid, agents []core.Agent, sol *core.Solution) {
	t.Helper()
	makespan := sol.Makespan()
	for _, a := range agents {
		p := sol.Paths[a.ID]
		require.Equal(t, a.Start, p[0])
		require.Equal(t, a.Goal, p[len(p)-1])
		for i := 1; i < len(p); i++ {
			if p[i] == p[i-1] {
				continue
			}
			dr := abs(p[i].Row - p[i-1].Row)
			dc := abs(p[i].Col - p[i-1].Col)
			require.Equal(t, 1, dr+dc)
			require.True(t, g.Passable(p[i].Row, p[i].Col))
		}
	}
	for t2 := 0; t2 < makespan; t2++ {
		seen := make(map[core.Cell]core.AgentID)
		for _, a := range agents {
			c := sol.Paths[a.ID].At(t2)
			if other, ok := seen[c]; ok {
				t.Fatalf("vertex collision at t=%d between agents %d and %d", t2, a.ID, other)
			}
			seen[c] = a.ID
		}
		for i := range agents {
			for j := i + 1; j < len(agents); j++ {
				a, b := agents[i], agents[j]
				if t2 == 0 {
					continue
				}
				if sol.Paths[a.ID].At(t2-1) == sol.Paths[b.ID].At(t2) &&
					sol.Paths[b.ID].At(t2-1) == sol.Paths[a.ID].At(t2) &&
					sol.Paths[a.ID].At(t2-1) != sol.Paths[a.ID].At(t2) {
					t.Fatalf("edge swap at t=%d between agents %d and %d", t2, a.ID, b.ID)
				}
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
