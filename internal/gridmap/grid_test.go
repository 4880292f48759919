package gridmap_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
)

const mapBody = "type test\nheight 3\nwidth 3\nmap\n.#.\n...\n.#.\n"

func TestParseMap(t *testing.T) {
	g, err := gridmap.Parse(strings.NewReader(mapBody))
	require.NoError(t, err)
	assert.True(t, g.Passable(0, 0))
	assert.False(t, g.Passable(0, 1))
	assert.True(t, g.Passable(1, 1))
	assert.False(t, g.Passable(-1, 0))
	assert.False(t, g.Passable(3, 0))
}

func TestNeighborsOrderIsDeterministic(t *testing.T) {
	g, err := gridmap.Parse(strings.NewReader(mapBody))
	require.NoError(t, err)
	// (0,1) and (2,1) are blocked, so only west, east, then wait survive.
	nbs := g.Neighbors(1, 1, true)
	require.Equal(t, []core.Cell{
		{Row: 1, Col: 0},
		{Row: 1, Col: 2},
		{Row: 1, Col: 1},
	}, nbs)
}

func TestLoadErrorWrapsUnderlying(t *testing.T) {
	_, err := gridmap.Load("/nonexistent/path.map")
	require.Error(t, err)
	var loadErr *gridmap.LoadError
	require.ErrorAs(t, err, &loadErr)
}
