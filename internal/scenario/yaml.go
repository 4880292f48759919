package scenario

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/core"
)

// yamlInstance mirrors the original's src/yaml.rs instance shape: a flat
// list of agents, each a [row, col] start and goal pair.
type yamlInstance struct {
	Agents []yamlAgent `yaml:"agents"`
}

type yamlAgent struct {
	Start [2]int `yaml:"start"`
	Goal  [2]int `yaml:"goal"`
}

// LoadYAML reads an alternative instance format accepted in place of
// scenario sampling (--yaml-path).
func LoadYAML(path string) ([]core.Agent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	agents, err := ParseYAML(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return agents, nil
}

// ParseYAML decodes the agents: [{start: [row,col], goal: [row,col]}, ...]
// document from r.
func ParseYAML(r io.Reader) ([]core.Agent, error) {
	var inst yamlInstance
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&inst); err != nil {
		return nil, err
	}
	agents := make([]core.Agent, len(inst.Agents))
	for i, a := range inst.Agents {
		agents[i] = core.Agent{
			ID:    core.AgentID(i),
			Start: core.Cell{Row: a.Start[0], Col: a.Start[1]},
			Goal:  core.Cell{Row: a.Goal[0], Col: a.Goal[1]},
		}
	}
	return agents, nil
}
