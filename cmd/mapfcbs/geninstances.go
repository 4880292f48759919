package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/pflag"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// runGenInstances produces a synthetic .map/.scen pair for local testing,
// adapted from the teacher's tools/gen_instances: a seeded random grid with
// a configurable obstacle density, and a scenario file of random
// start/goal rows, each cell drawn independently (with replacement) from
// the passable cells, so rows may share cells and a start may equal its goal.
func runGenInstances(args []string) int {
	fs := pflag.NewFlagSet("gen-instances", pflag.ContinueOnError)
	height := fs.Int("height", 16, "map height")
	width := fs.Int("width", 16, "map width")
	density := fs.Float64("obstacle-density", 0.1, "fraction of cells blocked")
	numRows := fs.Int("rows", 20, "number of scenario rows to generate")
	seed := fs.Uint64("seed", 1, "generator seed")
	mapOut := fs.String("map-out", "instance.map", "output .map path")
	scenOut := fs.String("scen-out", "instance.scen", "output .scen path")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfigOrInput
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	blocked := make([][]bool, *height)
	for r := range blocked {
		blocked[r] = make([]bool, *width)
		for c := range blocked[r] {
			blocked[r][c] = rng.Float64() < *density
		}
	}

	if err := writeMapFile(*mapOut, *height, *width, blocked); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfigOrInput
	}

	var passable []core.Cell
	for r := 0; r < *height; r++ {
		for c := 0; c < *width; c++ {
			if !blocked[r][c] {
				passable = append(passable, core.Cell{Row: r, Col: c})
			}
		}
	}
	if len(passable) < 2 {
		fmt.Fprintln(os.Stderr, "generated map has fewer than 2 passable cells")
		return exitConfigOrInput
	}

	if err := writeScenFile(*scenOut, *mapOut, *width, *height, *numRows, passable, rng); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfigOrInput
	}
	return exitOK
}

func writeMapFile(path string, height, width int, blocked [][]bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintln(f, "type octile")
	fmt.Fprintf(f, "height %d\n", height)
	fmt.Fprintf(f, "width %d\n", width)
	fmt.Fprintln(f, "map")
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			if blocked[r][c] {
				fmt.Fprint(f, "@")
			} else {
				fmt.Fprint(f, ".")
			}
		}
		fmt.Fprintln(f)
	}
	return nil
}

func writeScenFile(path, mapName string, width, height, numRows int, passable []core.Cell, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintln(f, "version 1")
	for i := 0; i < numRows; i++ {
		start := passable[rng.IntN(len(passable))]
		goal := passable[rng.IntN(len(passable))]
		fmt.Fprintf(f, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			0, mapName, width, height, start.Col, start.Row, goal.Col, goal.Row, 0)
	}
	return nil
}
