package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// LBCBS is the optimal-on-sum-of-costs variant: identical driver to CBS
// (single open queue, no focal list) but never builds MDDs or applies
// target reasoning; bypass, when enabled, uses the optimal predicate since
// LBCBS shares CBS's exact-optimality guarantee.
type LBCBS struct {
	Grid *gridmap.Grid
	Opts Options
}

func NewLBCBS(g *gridmap.Grid, opts Options) *LBCBS { return &LBCBS{Grid: g, Opts: opts} }

func (c *LBCBS) Name() string { return "lbcbs" }

func (c *LBCBS) Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool) {
	solve := func(agent core.Agent, constraints []core.Constraint, minLen int, _ map[core.AgentID]core.Path) (core.Path, int, bool) {
		return ConstrainedAStar(c.Grid, agent, constraints, minLen, st)
	}
	opts := c.Opts
	opts.TargetReasoning = false
	return runSingleOpenDriver(inst, solve, false, nil, opts, bypassOptimal, st)
}
