package scenario_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/scenario"
)

const scenBody = "version 1\n" +
	"0\tmymap\t8\t8\t1\t2\t6\t7\t10\n" +
	"0\tmymap\t8\t8\t2\t3\t5\t6\t9\n"

func TestParseScen(t *testing.T) {
	rows, err := scenario.Parse(strings.NewReader(scenBody))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Columns are (col,row); the loader swaps to (row,col).
	assert.Equal(t, core.Cell{Row: 2, Col: 1}, rows[0].Start)
	assert.Equal(t, core.Cell{Row: 7, Col: 6}, rows[0].Goal)
	assert.Equal(t, 10, rows[0].OptimalLength)
	assert.Equal(t, "mymap", rows[0].MapName)
}

func TestParseScenRejectsMalformedLine(t *testing.T) {
	_, err := scenario.Parse(strings.NewReader("version 1\n0 mymap 8 8 1 2\n"))
	require.Error(t, err)
	require.ErrorIs(t, err, scenario.ErrMalformedLine)
}

type allPassable struct{}

func (allPassable) Passable(row, col int) bool { return row >= 0 && col >= 0 }

func TestSampleDeterministicTakesFileOrder(t *testing.T) {
	rows, err := scenario.Parse(strings.NewReader(scenBody))
	require.NoError(t, err)

	agents, err := scenario.Sample(rows, 1, scenario.Deterministic, 0, allPassable{})
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, rows[0].Start, agents[0].Start)
	assert.Equal(t, rows[0].Goal, agents[0].Goal)
}

func TestSampleRejectsTooManyAgents(t *testing.T) {
	rows, err := scenario.Parse(strings.NewReader(scenBody))
	require.NoError(t, err)
	_, err = scenario.Sample(rows, 5, scenario.Deterministic, 0, allPassable{})
	require.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	doc := "agents:\n  - start: [0, 0]\n    goal: [2, 2]\n  - start: [2, 2]\n    goal: [0, 0]\n"
	agents, err := scenario.ParseYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, core.Cell{Row: 0, Col: 0}, agents[0].Start)
	assert.Equal(t, core.Cell{Row: 2, Col: 2}, agents[0].Goal)
}
