package runner

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// StatsRow is one §6 stats record: the run's configuration, outcome and
// expansion counters.
type StatsRow struct {
	Map, Scen  string
	NumAgents  int
	Dist       string
	Seed       uint64
	Solver     string
	WHigh, WLow float64
	Prio, Bypass, Target bool
	Cost       int
	TimeUs     int64
	Stats      *stats.Stats
}

// AppendStatsRow appends one CSV line to path, creating it with no header
// if it does not yet exist (append-only log, matching the teacher's
// tools/run_benchmarks output style).
func AppendStatsRow(path string, row StatsRow) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	record := []string{
		row.Map,
		row.Scen,
		fmt.Sprintf("%d", row.NumAgents),
		row.Dist,
		fmt.Sprintf("%d", row.Seed),
		row.Solver,
		fmt.Sprintf("%g", row.WHigh),
		fmt.Sprintf("%g", row.WLow),
		fmt.Sprintf("%v", row.Prio),
		fmt.Sprintf("%v", row.Bypass),
		fmt.Sprintf("%v", row.Target),
		fmt.Sprintf("%d", row.Cost),
		fmt.Sprintf("%d", row.TimeUs),
		fmt.Sprintf("%d", row.Stats.HighLevelExpansions),
		fmt.Sprintf("%d", row.Stats.LowLevelOpenExpansions),
		fmt.Sprintf("%d", row.Stats.LowLevelFocalExpansions),
		fmt.Sprintf("%d", row.Stats.LowLevelTotalExpansions()),
	}
	return w.Write(record)
}
