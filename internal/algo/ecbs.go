package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// ECBS is bounded-suboptimal keyed on the Σf_min_i lower bound rather than
// CT-node cost: a single suboptimality factor w_low governs both the
// low-level FocalAStarDualQueue search and the high-level focal bound.
type ECBS struct {
	Grid *gridmap.Grid
	Opts Options
}

func NewECBS(g *gridmap.Grid, opts Options) *ECBS { return &ECBS{Grid: g, Opts: opts} }

func (c *ECBS) Name() string { return "ecbs" }

func (c *ECBS) Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool) {
	solve := func(agent core.Agent, constraints []core.Constraint, minLen int, others map[core.AgentID]core.Path) (core.Path, int, bool) {
		return FocalAStarDualQueue(c.Grid, agent, constraints, minLen, c.Opts.WLow, others, st)
	}
	bypass := bypassSuboptimalWith(c.Opts.WLow)
	opts := c.Opts
	opts.BypassConflicts = false
	opts.TargetReasoning = false
	return runFocalDriver(inst, solve, false, nil, opts, bypass, fMinSum, c.Opts.WLow, st)
}
