package algo

import "github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"

// New constructs the named variant's Solver. name must already be validated
// (see runner.Config.Validate); an unrecognized name returns (nil, false).
func New(name string, g *gridmap.Grid, opts Options) (Solver, bool) {
	switch name {
	case "cbs":
		return NewCBS(g, opts), true
	case "lbcbs":
		return NewLBCBS(g, opts), true
	case "hbcbs":
		return NewHBCBS(g, opts), true
	case "bcbs":
		return NewBCBS(g, opts), true
	case "ecbs":
		return NewECBS(g, opts), true
	case "decbs":
		return NewDECBS(g, opts), true
	case "acbs":
		return NewACBS(g, opts), true
	default:
		return nil, false
	}
}
