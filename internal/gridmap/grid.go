// Package gridmap implements the Map Oracle: an immutable, read-only 4-connected
// grid with per-agent precomputed shortest-path heuristics.
package gridmap

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// Grid is a passability map with per-agent heuristic tables, shared by
// reference across a whole solve.
type Grid struct {
	Height, Width int
	blocked       []bool // row-major, true if not passable

	// heuristic[goal] is the shortest-path distance table (by row then col)
	// from every cell to goal, computed by backward Dijkstra. Agents that
	// share a goal cell share the same table.
	heuristic map[core.Cell][][]int
}

// LoadError wraps a failure to parse a .map file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("gridmap: load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load parses the line-based .map format: a header ("type ...", "height H",
// "width W", "map") followed by H lines of W characters each, '.' passable
// and any other character blocked.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	g, err := Parse(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return g, nil
}

// Parse reads the .map format from r.
func Parse(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	height, width := -1, -1
	sawMapHeader := false
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		var h, w int
		switch {
		case line == "map":
			sawMapHeader = true
		case sscanPrefix(line, "height", &h):
			height = h
		case sscanPrefix(line, "width", &w):
			width = w
		default:
			// "type ..." or unrecognized header line: ignored.
		}
		if sawMapHeader {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if height < 0 || width < 0 || !sawMapHeader {
		return nil, fmt.Errorf("malformed map header (height=%d width=%d map-seen=%v)", height, width, sawMapHeader)
	}

	blocked := make([]bool, height*width)
	row := 0
	for sc.Scan() && row < height {
		line := sc.Text()
		if len(line) < width {
			return nil, fmt.Errorf("row %d too short: got %d chars, want %d", row, len(line), width)
		}
		for col := 0; col < width; col++ {
			if line[col] != '.' {
				blocked[row*width+col] = true
			}
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if row != height {
		return nil, fmt.Errorf("map body has %d rows, want %d", row, height)
	}

	return &Grid{Height: height, Width: width, blocked: blocked, heuristic: make(map[core.Cell][][]int)}, nil
}

func sscanPrefix(line, prefix string, out *int) bool {
	if len(line) <= len(prefix)+1 || line[:len(prefix)] != prefix {
		return false
	}
	var v int
	if _, err := fmt.Sscanf(line[len(prefix)+1:], "%d", &v); err != nil {
		return false
	}
	*out = v
	return true
}

// Passable reports whether (row,col) is within bounds and not an obstacle.
func (g *Grid) Passable(row, col int) bool {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return false
	}
	return !g.blocked[row*g.Width+col]
}

// deltas is the deterministic neighbor order: north, south, west, east,
// then (optionally) wait-in-place. This order is load-bearing for
// downstream tie-break determinism per the Map Oracle's contract.
var deltas = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors returns the up-to-four 4-adjacent passable cells, plus (row,col)
// itself iff includeWait, in deterministic order.
func (g *Grid) Neighbors(row, col int, includeWait bool) []core.Cell {
	out := make([]core.Cell, 0, 5)
	for _, d := range deltas {
		nr, nc := row+d[0], col+d[1]
		if g.Passable(nr, nc) {
			out = append(out, core.Cell{Row: nr, Col: nc})
		}
	}
	if includeWait {
		out = append(out, core.Cell{Row: row, Col: col})
	}
	return out
}

// H returns the true shortest-path distance from (row,col) to goal under
// 4-connectivity, ignoring waits. The table for goal must already be
// precomputed via PrecomputeHeuristics, or H panics (an implementer error,
// not a runtime condition to be tolerated).
func (g *Grid) H(goal core.Cell, row, col int) int {
	table, ok := g.heuristic[goal]
	if !ok {
		panic(fmt.Sprintf("gridmap: heuristic not precomputed for goal %v", goal))
	}
	return table[row][col]
}
