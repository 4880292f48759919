package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// CBS is the optimal Conflict-Based Search driver: single cost-ordered
// open queue, optional MDDs (for prioritization/target-reasoning), optional
// bypass restricted to non-cardinal branches.
type CBS struct {
	Grid *gridmap.Grid
	Opts Options
}

func NewCBS(g *gridmap.Grid, opts Options) *CBS { return &CBS{Grid: g, Opts: opts} }

func (c *CBS) Name() string { return "cbs" }

func (c *CBS) Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool) {
	needMDD := c.Opts.PrioritizeConflicts || c.Opts.BypassConflicts || c.Opts.TargetReasoning
	solve := func(agent core.Agent, constraints []core.Constraint, minLen int, _ map[core.AgentID]core.Path) (core.Path, int, bool) {
		return ConstrainedAStar(c.Grid, agent, constraints, minLen, st)
	}
	buildMDD := func(agent core.Agent, constraints []core.Constraint, cost int) *core.MDD {
		return BuildMDD(c.Grid, agent, constraints, cost)
	}
	return runSingleOpenDriver(inst, solve, needMDD, buildMDD, c.Opts, bypassOptimal, st)
}
