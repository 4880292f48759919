package runner

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/algo"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// SolveWithTimeout races solver.Solve on its own goroutine against a
// context derived from timeoutSecs, joined with golang.org/x/sync/errgroup.
// A timeoutSecs of 0 disables the watchdog (context.Background). The core
// solver itself cooperates by checking inst.Ctx once per CT-node pop; on
// timeout the goroutine is abandoned and (nil, false) is returned.
func SolveWithTimeout(ctx context.Context, solver algo.Solver, inst *algo.Instance, st *stats.Stats, timeoutSecs int) (*core.Solution, bool) {
	if timeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
		defer cancel()
	}
	inst.Ctx = ctx

	var sol *core.Solution
	var solved bool
	done := make(chan struct{})

	var g errgroup.Group
	g.Go(func() error {
		defer close(done)
		sol, solved = solver.Solve(inst, st)
		return nil
	})

	select {
	case <-done:
		return sol, solved
	case <-ctx.Done():
		// The solve goroutine is abandoned: its next CT-node pop observes
		// inst.Ctx.Err() and returns (nil, false) on its own, but this call
		// does not wait for that to happen.
		return nil, false
	}
}
