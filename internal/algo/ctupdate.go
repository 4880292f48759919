package algo

import "github.com/elektrokombinacija/mapf-cbs-core/internal/core"

// cloneConstraints produces an independent copy of a parent's per-agent
// constraint map, safe for a child to mutate one agent's slot of without
// disturbing the parent or any sibling.
func cloneConstraints(src map[core.AgentID][]core.Constraint) map[core.AgentID][]core.Constraint {
	dst := make(map[core.AgentID][]core.Constraint, len(src))
	for id, cs := range src {
		cp := make([]core.Constraint, len(cs))
		copy(cp, cs)
		dst[id] = cp
	}
	return dst
}

func cloneIntMap(src map[core.AgentID]int) map[core.AgentID]int {
	dst := make(map[core.AgentID]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func clonePaths(src map[core.AgentID]core.Path) map[core.AgentID]core.Path {
	dst := make(map[core.AgentID]core.Path, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneMDDs(src map[core.AgentID]*core.MDD) map[core.AgentID]*core.MDD {
	dst := make(map[core.AgentID]*core.MDD, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// UpdateConstraint is §4.3.3: derive one child of parent by constraining
// the agent selected via resolveFirst (agent_1 if true, else agent_2; for a
// target conflict, the owner if true, else the other agent), re-solving
// only that agent's path, and redetecting conflicts against the
// new path set. Returns (nil, false) if the agent becomes unsolvable.
func UpdateConstraint(parent *CTNode, conflict core.Conflict, resolveFirst bool, solve LowLevelSolve, needMDD bool, buildMDD MDDBuilder, targetReasoning bool) (*CTNode, bool) {
	child := &CTNode{
		Agents:      parent.Agents,
		Paths:       clonePaths(parent.Paths),
		Constraints: cloneConstraints(parent.Constraints),
		LengthLB:    cloneIntMap(parent.LengthLB),
		FMin:        cloneIntMap(parent.FMin),
		MDDs:        cloneMDDs(parent.MDDs),
		Cost:        parent.Cost,
	}

	agentToUpdate := conflict.Agent2
	if resolveFirst {
		agentToUpdate = conflict.Agent1
	}
	if conflict.Kind == core.TargetConflict {
		// Target conflicts are asymmetric: Owner is whichever agent is
		// parked at its goal. resolveFirst always updates the owner
		// (vertex constraint + LB raise); !resolveFirst always updates
		// the interloper, regardless of which raw ID is higher.
		interloper := conflict.Agent1
		if interloper == conflict.Owner {
			interloper = conflict.Agent2
		}
		agentToUpdate = interloper
		if resolveFirst {
			agentToUpdate = conflict.Owner
		}
	}

	switch conflict.Kind {
	case core.VertexConflict:
		child.Constraints[agentToUpdate] = append(child.Constraints[agentToUpdate],
			core.VertexConstraint(conflict.Pos, conflict.Time, false))

	case core.EdgeConflict:
		if resolveFirst {
			child.Constraints[agentToUpdate] = append(child.Constraints[agentToUpdate],
				core.EdgeConstraint(conflict.From, conflict.To, conflict.Time))
		} else {
			// Mirror: agent_2 traverses To->From.
			child.Constraints[agentToUpdate] = append(child.Constraints[agentToUpdate],
				core.EdgeConstraint(conflict.To, conflict.From, conflict.Time))
		}

	case core.TargetConflict:
		if targetReasoning && !resolveFirst {
			for _, a := range parent.Agents {
				if a.ID == conflict.Owner {
					continue
				}
				child.Constraints[a.ID] = append(child.Constraints[a.ID],
					core.VertexConstraint(conflict.Pos, conflict.Time, true))
			}
		} else {
			child.Constraints[agentToUpdate] = append(child.Constraints[agentToUpdate],
				core.VertexConstraint(conflict.Pos, conflict.Time, false))
			if resolveFirst {
				if conflict.Time > child.LengthLB[agentToUpdate] {
					child.LengthLB[agentToUpdate] = conflict.Time
				}
			}
		}
	}

	agent := agentByID(parent.Agents, agentToUpdate)
	oldCost := parent.Paths[agentToUpdate].Cost()

	newPath, fMin, ok := solve(agent, child.Constraints[agentToUpdate], child.LengthLB[agentToUpdate], child.Paths)
	if !ok {
		return nil, false
	}

	child.Paths[agentToUpdate] = newPath
	child.FMin[agentToUpdate] = fMin
	child.Cost = child.Cost - oldCost + newPath.Cost()
	if needMDD {
		child.MDDs[agentToUpdate] = buildMDD(agent, child.Constraints[agentToUpdate], fMin)
	}

	child.Conflicts = DetectConflicts(parent.Agents, child.Paths, child.MDDs, targetReasoning)
	return child, true
}

// BypassChild is §4.3.4: if child (a proposed update of parent) satisfies
// the active bypass predicate, adopt only its changed agent's path, MDD and
// conflict list, keeping the parent's constraints and every other agent's
// path. The result re-enters the frontier as a mutated copy of parent.
func BypassChild(parent, child *CTNode, updatedAgent core.AgentID) *CTNode {
	adopted := &CTNode{
		Agents:      parent.Agents,
		Paths:       clonePaths(parent.Paths),
		Constraints: parent.Constraints, // unchanged: bypass does not branch
		LengthLB:    parent.LengthLB,
		FMin:        cloneIntMap(parent.FMin),
		MDDs:        cloneMDDs(parent.MDDs),
	}
	adopted.Paths[updatedAgent] = child.Paths[updatedAgent]
	adopted.FMin[updatedAgent] = child.FMin[updatedAgent]
	adopted.MDDs[updatedAgent] = child.MDDs[updatedAgent]
	adopted.Cost = parent.Cost - parent.Paths[updatedAgent].Cost() + child.Paths[updatedAgent].Cost()
	adopted.Conflicts = child.Conflicts
	return adopted
}
