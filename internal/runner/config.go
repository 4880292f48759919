// Package runner wires the CLI surface onto a solve: flag/config binding,
// validation, the timeout watchdog, and result/stats serialization.
package runner

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the fully bound, validated configuration for one solve
// invocation, assembled through viper from CLI flags and MAPFCBS_-prefixed
// environment variables (CLI wins on conflict). No config file is read.
type Config struct {
	YAMLPath     string `mapstructure:"yaml-path"`
	MapPath      string `mapstructure:"map-path"`
	ScenPath     string `mapstructure:"scen-path"`
	SolutionPath string `mapstructure:"solution-path"`
	OutputPath   string `mapstructure:"output-path"`

	NumAgents         int    `mapstructure:"num-agents"`
	AgentsDist        string `mapstructure:"agents-dist"`
	DeterministicScen bool   `mapstructure:"deterministic-scen"`
	Seed              uint64 `mapstructure:"seed"`

	Solver              string  `mapstructure:"solver"`
	LowSubOptimal       float64 `mapstructure:"low-level-sub-optimal"`
	HighSubOptimal      float64 `mapstructure:"high-level-sub-optimal"`
	PrioritizeConflicts bool    `mapstructure:"op-prioritize-conflicts"`
	BypassConflicts     bool    `mapstructure:"op-bypass-conflicts"`
	TargetReasoning     bool    `mapstructure:"op-target-reasoning"`

	TimeoutSecs int  `mapstructure:"timeout-secs"`
	LogJSON     bool `mapstructure:"log-json"`
}

// ConfigError wraps a configuration failure (§7 "Configuration error"),
// naming the offending flag.
type ConfigError struct {
	Flag string
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("runner: config error on --%s: %s", e.Flag, e.Msg)
}

// variantRequirements encodes §6's validation table: which of w_high/w_low
// each variant requires.
var variantRequirements = map[string]struct{ wantHigh, wantLow bool }{
	"cbs":    {false, false},
	"lbcbs":  {false, true},
	"hbcbs":  {true, false},
	"bcbs":   {true, true},
	"ecbs":   {false, true},
	"decbs":  {false, true},
	"acbs":   {false, true},
}

// RegisterFlags declares the CLI surface of §6 on fs and binds each flag
// into vp under the same key, so fs.Parse + vp.Unmarshal produces a Config
// with CLI taking precedence over environment variables (MAPFCBS_ prefix).
// No config file is bound.
func RegisterFlags(fs *pflag.FlagSet, vp *viper.Viper) {
	fs.String("yaml-path", "", "path to a YAML agent-instance file (alternative to scenario sampling)")
	fs.String("map-path", "", "path to the .map grid file")
	fs.String("scen-path", "", "path to the .scen scenario file")
	fs.String("solution-path", "", "path to write the solution file")
	fs.String("output-path", "", "path to append the stats CSV record")

	fs.Int("num-agents", 0, "number of agents to sample from the scenario")
	fs.String("agents-dist", "random", "agent sampling distribution: random or deterministic")
	fs.Bool("deterministic-scen", false, "take scenario rows in file order instead of random sampling")
	fs.Uint64("seed", 0, "seed for random agent sampling")

	fs.String("solver", "cbs", "solver variant: cbs, lbcbs, hbcbs, bcbs, ecbs, decbs, acbs")
	fs.Float64("low-level-sub-optimal", 0, "low-level suboptimality factor w_low")
	fs.Float64("high-level-sub-optimal", 0, "high-level suboptimality factor w_high")
	fs.Bool("op-prioritize-conflicts", false, "prioritize Cardinal/SemiCardinal conflicts at branch time")
	fs.Bool("op-bypass-conflicts", false, "attempt bypass before branching a CT node")
	fs.Bool("op-target-reasoning", false, "treat an agent parked at its goal as a permanent obstacle")

	fs.Int("timeout-secs", 0, "wall-clock budget in seconds; 0 disables the watchdog")
	fs.Bool("log-json", false, "emit structured logs as JSON instead of text")

	vp.SetEnvPrefix("MAPFCBS")
	vp.AutomaticEnv()
	_ = vp.BindPFlags(fs)
}

// Load unmarshals vp into a Config and validates it.
func Load(vp *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, &ConfigError{Flag: "(unmarshal)", Msg: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces §6's variant/weight compatibility rules and the w >=
// 1.0 floor, run once after binding and before any solve.
func (c *Config) Validate() error {
	req, ok := variantRequirements[c.Solver]
	if !ok {
		return &ConfigError{Flag: "solver", Msg: fmt.Sprintf("unknown variant %q", c.Solver)}
	}
	haveHigh := c.HighSubOptimal != 0
	haveLow := c.LowSubOptimal != 0

	if req.wantHigh != haveHigh {
		return &ConfigError{Flag: "high-level-sub-optimal", Msg: fmt.Sprintf("%s requires w_high set: %v", c.Solver, req.wantHigh)}
	}
	if req.wantLow != haveLow {
		return &ConfigError{Flag: "low-level-sub-optimal", Msg: fmt.Sprintf("%s requires w_low set: %v", c.Solver, req.wantLow)}
	}
	if haveHigh && c.HighSubOptimal < 1.0 {
		return &ConfigError{Flag: "high-level-sub-optimal", Msg: "must be >= 1.0"}
	}
	if haveLow && c.LowSubOptimal < 1.0 {
		return &ConfigError{Flag: "low-level-sub-optimal", Msg: "must be >= 1.0"}
	}
	if c.YAMLPath == "" && (c.MapPath == "" || c.ScenPath == "") {
		return &ConfigError{Flag: "map-path", Msg: "either --yaml-path or both --map-path and --scen-path are required"}
	}
	if c.AgentsDist != "random" && c.AgentsDist != "deterministic" {
		return &ConfigError{Flag: "agents-dist", Msg: fmt.Sprintf("unknown distribution %q", c.AgentsDist)}
	}
	return nil
}
