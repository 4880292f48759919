package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

func TestConstraintViolated(t *testing.T) {
	p := core.Cell{Row: 0, Col: 2}
	other := core.Cell{Row: 1, Col: 2}

	tests := []struct {
		name        string
		c           core.Constraint
		prev, pos   core.Cell
		t           int
		wantViolate bool
	}{
		{"vertex exact match", core.VertexConstraint(p, 2, false), other, p, 2, true},
		{"vertex wrong time", core.VertexConstraint(p, 2, false), other, p, 3, false},
		{"vertex wrong pos", core.VertexConstraint(p, 2, false), other, other, 2, false},
		{"permanent matches later time", core.VertexConstraint(p, 2, true), other, p, 5, true},
		{"permanent does not match earlier time", core.VertexConstraint(p, 2, true), other, p, 1, false},
		{"edge exact match", core.EdgeConstraint(other, p, 3), other, p, 3, true},
		{"edge wrong direction", core.EdgeConstraint(other, p, 3), p, other, 3, false},
		{"edge wrong time", core.EdgeConstraint(other, p, 3), other, p, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantViolate, tt.c.Violated(tt.prev, tt.pos, tt.t))
		})
	}
}

func TestAnyViolatedIsOrderInsensitive(t *testing.T) {
	p := core.Cell{Row: 0, Col: 0}
	q := core.Cell{Row: 0, Col: 1}
	cs := []core.Constraint{
		core.VertexConstraint(q, 5, false),
		core.VertexConstraint(p, 2, false),
	}
	require.True(t, core.AnyViolated(cs, core.Cell{Row: 1, Col: 0}, p, 2))

	reversed := []core.Constraint{cs[1], cs[0]}
	require.True(t, core.AnyViolated(reversed, core.Cell{Row: 1, Col: 0}, p, 2))
}

func TestConstraintHorizon(t *testing.T) {
	assert.Equal(t, 0, core.ConstraintHorizon(nil))
	cs := []core.Constraint{
		core.VertexConstraint(core.Cell{}, 3, false),
		core.VertexConstraint(core.Cell{}, 7, false),
		core.EdgeConstraint(core.Cell{}, core.Cell{}, 5),
	}
	assert.Equal(t, 7, core.ConstraintHorizon(cs))
}

func TestCellLess(t *testing.T) {
	assert.True(t, core.Cell{Row: 0, Col: 1}.Less(core.Cell{Row: 1, Col: 0}))
	assert.True(t, core.Cell{Row: 1, Col: 0}.Less(core.Cell{Row: 1, Col: 1}))
	assert.False(t, core.Cell{Row: 1, Col: 1}.Less(core.Cell{Row: 1, Col: 1}))
}
