package algo

import "github.com/elektrokombinacija/mapf-cbs-core/internal/core"

// hFocal is the focal heuristic of §4.2.6: for a move into pos at time t
// from prevPos, count +1 per other agent currently occupying pos at t
// (vertex conflict) and +1 per other agent completing the swap edge
// pos<->prevPos at t (edge conflict). Never queried at t=0.
func hFocal(self core.AgentID, prevPos, pos core.Cell, t int, others map[core.AgentID]core.Path) int {
	if t == 0 {
		return 0
	}
	count := 0
	for id, path := range others {
		if id == self || len(path) == 0 {
			continue
		}
		if path.At(t) == pos {
			count++
		}
		if t < len(path) && path.At(t) == prevPos && path.At(t-1) == pos {
			count++
		}
	}
	return count
}
