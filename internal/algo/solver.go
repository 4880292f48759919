package algo

import (
	"context"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// Instance is the solver's input: the shared map oracle and the agents to
// route. Ctx is checked once per CT-node pop by the high-level driver loop
// (§5's cooperative-cancellation point); a nil Ctx behaves like
// context.Background.
type Instance struct {
	Grid   *gridmap.Grid
	Agents []core.Agent
	Ctx    context.Context
}

// ctx returns inst.Ctx, defaulting to a non-cancelable background context.
func (inst *Instance) ctx() context.Context {
	if inst.Ctx == nil {
		return context.Background()
	}
	return inst.Ctx
}

// Options configures one high-level search driver instantiation.
type Options struct {
	WLow, WHigh         float64
	PrioritizeConflicts bool
	BypassConflicts     bool
	TargetReasoning     bool
}

// Solver is implemented by each CBS variant's high-level search driver.
type Solver interface {
	Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool)
	Name() string
}

// selectConflict picks the conflict to branch on for one CT-node expansion.
// With prioritization on: first Cardinal, else SemiCardinal, else
// NonCardinal, else Unknown, else the first in the list. Otherwise, the
// first conflict in the list.
func selectConflict(conflicts []core.Conflict, prioritize bool) core.Conflict {
	if !prioritize {
		return conflicts[0]
	}
	for _, want := range []core.CardinalType{core.Cardinal, core.SemiCardinal, core.NonCardinal, core.Unknown} {
		for _, c := range conflicts {
			if c.Cardinal == want {
				return c
			}
		}
	}
	return conflicts[0]
}

// bypassFunc is the shape both bypass predicates share, so expandNode can
// take either one uniformly: the branched conflict is supplied for the
// optimal predicate, updatedAgent for the suboptimal one, and each ignores
// whichever argument it doesn't need.
type bypassFunc func(parent, child *CTNode, updatedAgent core.AgentID, branched core.Conflict) bool

// bypassOptimal is §4.4's bypass predicate for optimal variants (CBS): the
// proposed child has equal cost to its parent, strictly fewer conflicts,
// and the branched conflict is not Cardinal.
func bypassOptimal(parent, child *CTNode, _ core.AgentID, branched core.Conflict) bool {
	return child.Cost == parent.Cost &&
		len(child.Conflicts) < len(parent.Conflicts) &&
		branched.Cardinal != core.Cardinal
}

// bypassSuboptimalWith binds the suboptimality factor w (w_high for HBCBS,
// w_low for the ECBS-family), returning a bypassFunc usable by the
// bounded-suboptimal drivers. LB = Σ
// parent.f_min_i * w; bypass iff the child has strictly fewer conflicts,
// cost within LB, and the updated agent's own path length stays within its
// f_min bound scaled by w.
func bypassSuboptimalWith(w float64) bypassFunc {
	return func(parent, child *CTNode, updatedAgent core.AgentID, _ core.Conflict) bool {
		lb := 0.0
		for _, v := range parent.FMin {
			lb += float64(v) * w
		}
		if len(child.Conflicts) >= len(parent.Conflicts) {
			return false
		}
		if float64(child.Cost) > lb {
			return false
		}
		updatedLen := float64(child.Paths[updatedAgent].Cost())
		return updatedLen <= float64(parent.FMin[updatedAgent])*w
	}
}

// solutionFrom extracts the final core.Solution from a conflict-free CT
// node.
func solutionFrom(n *CTNode) *core.Solution {
	sol := core.NewSolution()
	for id, p := range n.Paths {
		sol.Paths[id] = p
	}
	return sol
}
