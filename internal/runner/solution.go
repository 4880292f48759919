package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// WriteSolutionFile writes sol to path in §6's key=value + per-timestep
// format, coordinates emitted as (col,row).
func WriteSolutionFile(path string, mapFile, solverName string, agents []core.Agent, sol *core.Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := WriteSolution(w, mapFile, solverName, agents, sol); err != nil {
		return err
	}
	return w.Flush()
}

// WriteSolution renders sol onto w for a solved instance.
func WriteSolution(w io.Writer, mapFile, solverName string, agents []core.Agent, sol *core.Solution) error {
	makespan := sol.Makespan()

	fmt.Fprintf(w, "agents=%d\n", len(agents))
	fmt.Fprintf(w, "map_file=%s\n", mapFile)
	fmt.Fprintf(w, "solver=%s\n", solverName)
	fmt.Fprintf(w, "solved=1\n")
	fmt.Fprintf(w, "soc=%d\n", sol.SoC())
	fmt.Fprintf(w, "makespan=%d\n", makespan)

	fmt.Fprintf(w, "starts=")
	for i, a := range agents {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, "(%d,%d)", a.Start.Col, a.Start.Row)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "goals=")
	for i, a := range agents {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, "(%d,%d)", a.Goal.Col, a.Goal.Row)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "solution=")
	for t := 0; t < makespan; t++ {
		fmt.Fprintf(w, "%d:", t)
		for i, a := range agents {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			cell := sol.Paths[a.ID].At(t)
			fmt.Fprintf(w, "(%d,%d)", cell.Col, cell.Row)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteNoSolutionFile writes the solved=0 variant of the solution file for a
// timeout or exhausted-frontier result.
func WriteNoSolutionFile(path string, mapFile, solverName string, agents []core.Agent) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "agents=%d\n", len(agents))
	fmt.Fprintf(w, "map_file=%s\n", mapFile)
	fmt.Fprintf(w, "solver=%s\n", solverName)
	fmt.Fprintf(w, "solved=0\n")
	return w.Flush()
}
