package algo

import (
	"sort"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// LowLevelSolve resolves one agent's path given a constraint set, a
// path-length lower bound, and the current paths of every other agent
// (consumed by focal variants via hFocal; ignored by the optimal
// variants). Each high-level driver closes over its own choice of
// low-level search and weight to produce this function.
type LowLevelSolve func(agent core.Agent, constraints []core.Constraint, minPathLength int, others map[core.AgentID]core.Path) (core.Path, int, bool)

// MDDBuilder constructs an MDD for agent given its resolved optimal cost.
type MDDBuilder func(agent core.Agent, constraints []core.Constraint, cost int) *core.MDD

// CTNode is one constraint-tree node: per-agent paths, constraint sets,
// path-length lower bounds, f_min values, optional MDDs, aggregate cost,
// and the conflict list.
type CTNode struct {
	Agents       []core.Agent
	Paths        map[core.AgentID]core.Path
	Constraints  map[core.AgentID][]core.Constraint
	LengthLB     map[core.AgentID]int
	FMin         map[core.AgentID]int
	MDDs         map[core.AgentID]*core.MDD
	Cost         int
	Conflicts    []core.Conflict
}

// NewRootCTNode performs §4.3.1's root construction: each agent is solved
// in order with an empty constraint set and L=0, with the already-resolved
// paths of prior agents visible to the low-level search's focal heuristic.
func NewRootCTNode(agents []core.Agent, solve LowLevelSolve, needMDD bool, buildMDD MDDBuilder, targetReasoning bool) (*CTNode, bool) {
	n := &CTNode{
		Agents:      agents,
		Paths:       make(map[core.AgentID]core.Path, len(agents)),
		Constraints: make(map[core.AgentID][]core.Constraint, len(agents)),
		LengthLB:    make(map[core.AgentID]int, len(agents)),
		FMin:        make(map[core.AgentID]int, len(agents)),
		MDDs:        make(map[core.AgentID]*core.MDD, len(agents)),
	}
	for _, a := range agents {
		path, fMin, ok := solve(a, nil, 0, n.Paths)
		if !ok {
			return nil, false
		}
		n.Paths[a.ID] = path
		n.FMin[a.ID] = fMin
		n.Cost += path.Cost()
		if needMDD {
			n.MDDs[a.ID] = buildMDD(a, nil, fMin)
		}
	}
	n.Conflicts = DetectConflicts(agents, n.Paths, n.MDDs, targetReasoning)
	return n, true
}

func agentByID(agents []core.Agent, id core.AgentID) core.Agent {
	for _, a := range agents {
		if a.ID == id {
			return a
		}
	}
	return core.Agent{}
}

// DetectConflicts compares every unordered pair of agent paths per §4.3.2
// and returns conflicts in deterministic emission order (ascending agent
// pair, then ascending step).
func DetectConflicts(agents []core.Agent, paths map[core.AgentID]core.Path, mdds map[core.AgentID]*core.MDD, targetReasoning bool) []core.Conflict {
	ids := make([]core.AgentID, 0, len(agents))
	for _, a := range agents {
		ids = append(ids, a.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var conflicts []core.Conflict
	for ii := 0; ii < len(ids); ii++ {
		for jj := ii + 1; jj < len(ids); jj++ {
			i, j := ids[ii], ids[jj]
			pi, pj := paths[i], paths[j]
			ai, aj := agentByID(agents, i), agentByID(agents, j)
			maxLen := core.MaxLen(pi, pj)
			for t := 1; t < maxLen; t++ {
				posI, posJ := pi.At(t), pj.At(t)
				if posI == posJ {
					switch {
					case t >= len(pi)-1 && posI == ai.Goal:
						conflicts = append(conflicts, core.Conflict{
							Kind: core.TargetConflict, Agent1: i, Agent2: j, Pos: posI, Time: t, Owner: i,
							Cardinal: classifyTarget(mdds[i], mdds[j], t, posI, targetReasoning),
						})
					case t >= len(pj)-1 && posJ == aj.Goal:
						conflicts = append(conflicts, core.Conflict{
							Kind: core.TargetConflict, Agent1: i, Agent2: j, Pos: posJ, Time: t, Owner: j,
							Cardinal: classifyTarget(mdds[i], mdds[j], t, posJ, targetReasoning),
						})
					default:
						conflicts = append(conflicts, core.Conflict{
							Kind: core.VertexConflict, Agent1: i, Agent2: j, Pos: posI, Time: t,
							Cardinal: classifyVertexOrTarget(mdds[i], mdds[j], t, posI),
						})
					}
				}
				if t < len(pi) && t < len(pj) {
					prevI, prevJ := pi.At(t-1), pj.At(t-1)
					if prevI == posJ && prevJ == posI && prevI != posI {
						conflicts = append(conflicts, core.Conflict{
							Kind: core.EdgeConflict, Agent1: i, Agent2: j, From: prevI, To: posI, Time: t,
							Cardinal: classifyEdge(mdds[i], mdds[j], t, prevI, posI, prevJ, posJ),
						})
					}
				}
			}
		}
	}
	return conflicts
}

func classifyVertexOrTarget(mddI, mddJ *core.MDD, t int, pos core.Cell) core.CardinalType {
	haveI, haveJ := mddI != nil, mddJ != nil
	singI := haveI && mddI.IsSingletonAtPosition(t, pos)
	singJ := haveJ && mddJ.IsSingletonAtPosition(t, pos)
	return combineCardinal(haveI, haveJ, singI, singJ)
}

func classifyTarget(mddI, mddJ *core.MDD, t int, pos core.Cell, targetReasoning bool) core.CardinalType {
	if !targetReasoning {
		return core.Unknown
	}
	return classifyVertexOrTarget(mddI, mddJ, t, pos)
}

func classifyEdge(mddI, mddJ *core.MDD, t int, prevI, posI, prevJ, posJ core.Cell) core.CardinalType {
	haveI, haveJ := mddI != nil, mddJ != nil
	singI := haveI && mddI.IsSingletonAtPosition(t-1, prevI) && mddI.IsSingletonAtPosition(t, posI)
	singJ := haveJ && mddJ.IsSingletonAtPosition(t-1, prevJ) && mddJ.IsSingletonAtPosition(t, posJ)
	return combineCardinal(haveI, haveJ, singI, singJ)
}

func combineCardinal(haveI, haveJ, singI, singJ bool) core.CardinalType {
	switch {
	case !haveI && !haveJ:
		return core.Unknown
	case haveI && haveJ:
		switch {
		case singI && singJ:
			return core.Cardinal
		case singI || singJ:
			return core.SemiCardinal
		default:
			return core.NonCardinal
		}
	default:
		only := singI || singJ
		if only {
			return core.SemiCardinal
		}
		return core.NonCardinal
	}
}
