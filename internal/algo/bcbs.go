package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// BCBS is bounded-suboptimal with focal maintained at both levels: the
// low-level search runs FocalAStarDualQueue bounded by w_low, and the CT
// frontier runs open+focal keyed on node cost with w_high.
type BCBS struct {
	Grid *gridmap.Grid
	Opts Options
}

func NewBCBS(g *gridmap.Grid, opts Options) *BCBS { return &BCBS{Grid: g, Opts: opts} }

func (c *BCBS) Name() string { return "bcbs" }

func (c *BCBS) Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool) {
	solve := func(agent core.Agent, constraints []core.Constraint, minLen int, others map[core.AgentID]core.Path) (core.Path, int, bool) {
		return FocalAStarDualQueue(c.Grid, agent, constraints, minLen, c.Opts.WLow, others, st)
	}
	bypass := bypassSuboptimalWith(c.Opts.WHigh)
	boundKey := func(n *CTNode) int { return n.Cost }
	opts := c.Opts
	opts.BypassConflicts = false
	opts.TargetReasoning = false
	return runFocalDriver(inst, solve, false, nil, opts, bypass, boundKey, c.Opts.WHigh, st)
}
