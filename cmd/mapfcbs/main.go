// Command mapfcbs solves multi-agent pathfinding instances with
// Conflict-Based Search and its bounded-suboptimal variants.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/algo"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/runner"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/scenario"
	"github.com/elektrokombinacija/mapf-cbs-core/internal/stats"
)

// Exit codes per §7.1: 0 success, 1 no-solution/timeout, 2
// configuration/invalid-input error.
const (
	exitOK = iota
	exitNoSolution
	exitConfigOrInput
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mapfcbs {solve|gen-instances|benchmark} [flags]")
		os.Exit(exitConfigOrInput)
	}

	sub, rest := os.Args[1], os.Args[2:]
	var code int
	switch sub {
	case "solve":
		code = runSolve(rest)
	case "gen-instances":
		code = runGenInstances(rest)
	case "benchmark":
		code = runBenchmark(rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", sub)
		code = exitConfigOrInput
	}
	os.Exit(code)
}

func newLogger(jsonOut bool) *slog.Logger {
	if jsonOut {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func runSolve(args []string) int {
	fs := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	vp := viper.New()
	runner.RegisterFlags(fs, vp)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfigOrInput
	}

	cfg, err := runner.Load(vp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfigOrInput
	}

	log := newLogger(cfg.LogJSON)

	grid, agents, err := loadInstance(cfg)
	if err != nil {
		log.Error("failed to load instance", "err", err)
		return exitConfigOrInput
	}

	grid.PrecomputeHeuristics(agents)

	opts := algo.Options{
		WLow:                cfg.LowSubOptimal,
		WHigh:               cfg.HighSubOptimal,
		PrioritizeConflicts: cfg.PrioritizeConflicts,
		BypassConflicts:     cfg.BypassConflicts,
		TargetReasoning:     cfg.TargetReasoning,
	}
	solver, ok := algo.New(cfg.Solver, grid, opts)
	if !ok {
		log.Error("unknown solver variant", "solver", cfg.Solver)
		return exitConfigOrInput
	}

	inst := &algo.Instance{Grid: grid, Agents: agents}
	st := stats.New()
	sol, solved := runner.SolveWithTimeout(context.Background(), solver, inst, st, cfg.TimeoutSecs)
	st.Stop()

	cost := 0
	if solved {
		cost = sol.SoC()
	}

	if cfg.SolutionPath != "" {
		var werr error
		if solved {
			werr = runner.WriteSolutionFile(cfg.SolutionPath, cfg.MapPath, cfg.Solver, agents, sol)
		} else {
			werr = runner.WriteNoSolutionFile(cfg.SolutionPath, cfg.MapPath, cfg.Solver, agents)
		}
		if werr != nil {
			log.Error("failed to write solution file", "err", werr)
		}
	}

	if cfg.OutputPath != "" {
		row := runner.StatsRow{
			Map: cfg.MapPath, Scen: cfg.ScenPath, NumAgents: len(agents),
			Dist: cfg.AgentsDist, Seed: cfg.Seed, Solver: cfg.Solver,
			WHigh: cfg.HighSubOptimal, WLow: cfg.LowSubOptimal,
			Prio: cfg.PrioritizeConflicts, Bypass: cfg.BypassConflicts, Target: cfg.TargetReasoning,
			Cost: cost, TimeUs: st.ElapsedMicros, Stats: st,
		}
		if err := runner.AppendStatsRow(cfg.OutputPath, row); err != nil {
			log.Error("failed to append stats row", "err", err)
		}
	}

	if !solved {
		log.Warn("no solution", "solver", cfg.Solver, "agents", len(agents))
		return exitNoSolution
	}
	log.Info("solved", "solver", cfg.Solver, "cost", cost, "high_expansions", st.HighLevelExpansions)
	return exitOK
}

// loadInstance loads the grid from --map-path (in both modes), then the
// agent set from the YAML instance path if one is given, else by sampling
// the scenario file.
func loadInstance(cfg *runner.Config) (*gridmap.Grid, []core.Agent, error) {
	grid, err := gridmap.Load(cfg.MapPath)
	if err != nil {
		return nil, nil, err
	}

	if cfg.YAMLPath != "" {
		agents, err := scenario.LoadYAML(cfg.YAMLPath)
		if err != nil {
			return nil, nil, err
		}
		return grid, agents, nil
	}

	rows, err := scenario.Load(cfg.ScenPath)
	if err != nil {
		return nil, nil, err
	}
	dist := scenario.Random
	if cfg.DeterministicScen || cfg.AgentsDist == "deterministic" {
		dist = scenario.Deterministic
	}
	agents, err := scenario.Sample(rows, cfg.NumAgents, dist, cfg.Seed, grid)
	if err != nil {
		return nil, nil, err
	}
	return grid, agents, nil
}
