// Package stats accumulates per-solve expansion counters, passed by
// parameter into the search rather than held as global mutable state.
package stats

import "time"

// Stats is the sink threaded through one solve call. Every low-level and
// high-level search increments its counters directly.
type Stats struct {
	HighLevelExpansions      int
	LowLevelOpenExpansions   int
	LowLevelFocalExpansions  int
	start                    time.Time
	ElapsedMicros            int64
}

// New returns a zeroed Stats with its clock started.
func New() *Stats {
	return &Stats{start: time.Now()}
}

// LowLevelTotalExpansions is the sum §6's stats record reports in its
// low_total_expansions column.
func (s *Stats) LowLevelTotalExpansions() int {
	return s.LowLevelOpenExpansions + s.LowLevelFocalExpansions
}

// Stop freezes the elapsed wall-clock time since New.
func (s *Stats) Stop() {
	s.ElapsedMicros = time.Since(s.start).Microseconds()
}
