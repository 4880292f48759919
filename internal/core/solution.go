package core

import "sort"

// Solution is one collision-free path per agent.
type Solution struct {
	Paths map[AgentID]Path
}

// NewSolution returns an empty solution ready to be populated.
func NewSolution() *Solution {
	return &Solution{Paths: make(map[AgentID]Path)}
}

// SoC is the sum of costs (sum of per-agent len(path)-1), the quantity CBS
// and LBCBS minimize.
func (s *Solution) SoC() int {
	total := 0
	for _, p := range s.Paths {
		total += p.Cost()
	}
	return total
}

// Makespan is the maximum per-agent path length (in steps, not moves).
func (s *Solution) Makespan() int {
	max := 0
	for _, p := range s.Paths {
		if len(p) > max {
			max = len(p)
		}
	}
	return max
}

// AgentIDs returns the solution's agent ids in ascending order, a
// deterministic alternative to ranging over the Paths map.
func (s *Solution) AgentIDs() []AgentID {
	ids := make([]AgentID, 0, len(s.Paths))
	for id := range s.Paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
