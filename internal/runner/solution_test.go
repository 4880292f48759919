package runner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/runner"
)

func TestWriteSolutionFormat(t *testing.T) {
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 0, Col: 0}},
	}
	sol := core.NewSolution()
	sol.Paths[0] = core.Path{
		{Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2}, {Row: 0, Col: 1}, {Row: 0, Col: 0},
	}

	var buf strings.Builder
	require.NoError(t, runner.WriteSolution(&buf, "m.map", "cbs", agents, sol))
	out := buf.String()

	assert.Contains(t, out, "agents=1\n")
	assert.Contains(t, out, "solver=cbs\n")
	assert.Contains(t, out, "solved=1\n")
	assert.Contains(t, out, "soc=4\n")
	assert.Contains(t, out, "makespan=5\n")
	assert.Contains(t, out, "starts=(2,2)\n")
	assert.Contains(t, out, "goals=(0,0)\n")
	assert.Contains(t, out, "0:(2,2)\n")
	assert.Contains(t, out, "4:(0,0)\n")
}
