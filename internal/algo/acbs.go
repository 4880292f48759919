package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// ACBS keys on Σf_min_i like ECBS and DECBS, but its low-level search
// alternates expansion between the open and focal queues each iteration
// instead of running a dual-queue pass from a single side. MDDs, target
// reasoning and bypass are all available.
type ACBS struct {
	Grid *gridmap.Grid
	Opts Options
}

func NewACBS(g *gridmap.Grid, opts Options) *ACBS { return &ACBS{Grid: g, Opts: opts} }

func (c *ACBS) Name() string { return "acbs" }

func (c *ACBS) Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool) {
	needMDD := c.Opts.PrioritizeConflicts || c.Opts.BypassConflicts || c.Opts.TargetReasoning
	solve := func(agent core.Agent, constraints []core.Constraint, minLen int, others map[core.AgentID]core.Path) (core.Path, int, bool) {
		return AlternatingFocalAStar(c.Grid, agent, constraints, minLen, c.Opts.WLow, others, st)
	}
	buildMDD := func(agent core.Agent, constraints []core.Constraint, cost int) *core.MDD {
		return BuildMDD(c.Grid, agent, constraints, cost)
	}
	bypass := bypassSuboptimalWith(c.Opts.WLow)
	return runFocalDriver(inst, solve, needMDD, buildMDD, c.Opts, bypass, fMinSum, c.Opts.WLow, st)
}
