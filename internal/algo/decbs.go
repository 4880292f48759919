package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// DECBS keys on Σf_min_i like ECBS, but its low-level search is DoubleSearch:
// a plain A* pass establishes f_min before the bounded focal pass runs,
// decoupling the bound from the focal expansion. MDDs, target reasoning and
// bypass are all available, unlike ECBS/BCBS.
type DECBS struct {
	Grid *gridmap.Grid
	Opts Options
}

func NewDECBS(g *gridmap.Grid, opts Options) *DECBS { return &DECBS{Grid: g, Opts: opts} }

func (c *DECBS) Name() string { return "decbs" }

func (c *DECBS) Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool) {
	needMDD := c.Opts.PrioritizeConflicts || c.Opts.BypassConflicts || c.Opts.TargetReasoning
	solve := func(agent core.Agent, constraints []core.Constraint, minLen int, others map[core.AgentID]core.Path) (core.Path, int, bool) {
		return DoubleSearch(c.Grid, agent, constraints, minLen, c.Opts.WLow, others, st)
	}
	buildMDD := func(agent core.Agent, constraints []core.Constraint, cost int) *core.MDD {
		return BuildMDD(c.Grid, agent, constraints, cost)
	}
	bypass := bypassSuboptimalWith(c.Opts.WLow)
	return runFocalDriver(inst, solve, needMDD, buildMDD, c.Opts, bypass, fMinSum, c.Opts.WLow, st)
}
