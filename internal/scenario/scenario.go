// Package scenario loads agent start/goal pairs from ".scen" bucket files
// or a YAML instance file, and samples agent sets from loaded scenarios.
package scenario

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// LoadError wraps a failure to parse a .scen or .yaml instance file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("scenario: load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

var (
	// ErrMalformedLine is wrapped by LoadError when a .scen row does not
	// have the expected column count or a column fails to parse as an int.
	ErrMalformedLine = fmt.Errorf("malformed scenario line")
	// ErrNotPassable is wrapped when a sampled agent's start or goal lands
	// on a blocked cell.
	ErrNotPassable = fmt.Errorf("agent start or goal is not passable")
	// ErrDuplicateAgent is wrapped when, after skipping rows whose start or
	// goal repeats an already drawn agent's, too few rows remain to fill
	// the requested agent count.
	ErrDuplicateAgent = fmt.Errorf("duplicate agent start or goal")
)

// Row is one parsed .scen line: a candidate agent, with start and goal
// swapped from the file's (col, row) order to (row, col), plus the bucket
// it belongs to.
type Row struct {
	Bucket        int
	MapName       string
	MapWidth      int
	MapHeight     int
	Start         core.Cell // already swapped to (row, col)
	Goal          core.Cell
	OptimalLength int
}

// Load parses a .scen file's rows. The first line is a "version ..." header
// and is skipped; every following non-blank line is nine whitespace-
// separated fields in (col, row) order, swapped once here to (row, col).
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	rows, err := Parse(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return rows, nil
}

// Parse reads the .scen format from r.
func Parse(r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var rows []Row
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.HasPrefix(line, "version") {
				continue
			}
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func parseRow(line string) (Row, error) {
	fields := strings.Fields(line)
	if len(fields) != 9 {
		return Row{}, fmt.Errorf("%w: got %d fields, want 9", ErrMalformedLine, len(fields))
	}
	ints := make([]int, 0, 8)
	for i, f := range fields {
		if i == 1 { // map_name is a string field
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return Row{}, fmt.Errorf("%w: field %d (%q): %v", ErrMalformedLine, i, f, err)
		}
		ints = append(ints, v)
	}
	// ints holds: bucket, map_width, map_height, start_col, start_row,
	// goal_col, goal_row, optimal_length.
	return Row{
		Bucket:        ints[0],
		MapName:       fields[1],
		MapWidth:      ints[1],
		MapHeight:     ints[2],
		Start:         core.Cell{Row: ints[4], Col: ints[3]},
		Goal:          core.Cell{Row: ints[6], Col: ints[5]},
		OptimalLength: ints[7],
	}, nil
}
