package algo

import (
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// HBCBS is bounded-suboptimal with focal maintained only at the high level:
// the low-level search stays plain ConstrainedAStar, while the CT frontier
// runs the open+focal skeleton keyed on node cost with w_high.
type HBCBS struct {
	Grid *gridmap.Grid
	Opts Options
}

func NewHBCBS(g *gridmap.Grid, opts Options) *HBCBS { return &HBCBS{Grid: g, Opts: opts} }

func (c *HBCBS) Name() string { return "hbcbs" }

func (c *HBCBS) Solve(inst *Instance, st *stats.Stats) (*core.Solution, bool) {
	solve := func(agent core.Agent, constraints []core.Constraint, minLen int, _ map[core.AgentID]core.Path) (core.Path, int, bool) {
		return ConstrainedAStar(c.Grid, agent, constraints, minLen, st)
	}
	bypass := bypassSuboptimalWith(c.Opts.WHigh)
	boundKey := func(n *CTNode) int { return n.Cost }
	return runFocalDriver(inst, solve, false, nil, c.Opts, bypass, boundKey, c.Opts.WHigh, st)
}
