package scenario

import (
	"fmt"
	"math/rand/v2"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// Dist selects how agents are drawn from a scenario's rows.
type Dist int

const (
	// Deterministic takes the first N rows in file order.
	Deterministic Dist = iota
	// Random samples N rows without replacement, seeded from --seed.
	Random
)

// Passable is satisfied by a loaded grid; kept narrow so this package does
// not import gridmap.
type Passable interface {
	Passable(row, col int) bool
}

// Sample draws n agents from rows according to dist, validating each
// candidate's start/goal against grid and rejecting duplicate starts or
// goals across the drawn set — mirroring the original's
// generate_agents_by_buckets / generate_agents_randomly.
func Sample(rows []Row, n int, dist Dist, seed uint64, grid Passable) ([]core.Agent, error) {
	if n > len(rows) {
		return nil, fmt.Errorf("%w: requested %d agents, scenario has %d rows", ErrMalformedLine, n, len(rows))
	}

	var order []int
	switch dist {
	case Random:
		rng := rand.New(rand.NewPCG(seed, seed))
		order = rng.Perm(len(rows))
	default:
		order = make([]int, len(rows))
		for i := range order {
			order[i] = i
		}
	}

	starts := make(map[core.Cell]bool, n)
	goals := make(map[core.Cell]bool, n)
	agents := make([]core.Agent, 0, n)

	for _, idx := range order {
		if len(agents) == n {
			break
		}
		row := rows[idx]
		if !grid.Passable(row.Start.Row, row.Start.Col) || !grid.Passable(row.Goal.Row, row.Goal.Col) {
			return nil, ErrNotPassable
		}
		if starts[row.Start] || goals[row.Goal] {
			continue // skip, don't fail: a later row may still fill the slot
		}
		starts[row.Start] = true
		goals[row.Goal] = true
		agents = append(agents, core.Agent{ID: core.AgentID(len(agents)), Start: row.Start, Goal: row.Goal})
	}

	if len(agents) < n {
		return nil, fmt.Errorf("%w: could not assemble %d non-duplicate agents from %d rows", ErrDuplicateAgent, n, len(rows))
	}
	return agents, nil
}
