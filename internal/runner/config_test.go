package runner_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-cbs-core/internal/runner"
)

func loadWith(t *testing.T, args []string) (*runner.Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	vp := viper.New()
	runner.RegisterFlags(fs, vp)
	require.NoError(t, fs.Parse(args))
	return runner.Load(vp)
}

func TestValidateCBSRejectsWeights(t *testing.T) {
	_, err := loadWith(t, []string{"--solver=cbs", "--map-path=m", "--scen-path=s", "--high-level-sub-optimal=1.2"})
	require.Error(t, err)
	var cfgErr *runner.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidateHBCBSRequiresWHigh(t *testing.T) {
	_, err := loadWith(t, []string{"--solver=hbcbs", "--map-path=m", "--scen-path=s"})
	require.Error(t, err)
}

func TestValidateBCBSRequiresBothWeights(t *testing.T) {
	cfg, err := loadWith(t, []string{
		"--solver=bcbs", "--map-path=m", "--scen-path=s",
		"--high-level-sub-optimal=1.5", "--low-level-sub-optimal=1.2",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.HighSubOptimal)
	assert.Equal(t, 1.2, cfg.LowSubOptimal)
}

func TestValidateRejectsWeightBelowOne(t *testing.T) {
	_, err := loadWith(t, []string{"--solver=hbcbs", "--map-path=m", "--scen-path=s", "--high-level-sub-optimal=0.5"})
	require.Error(t, err)
}

func TestValidateRejectsUnknownSolver(t *testing.T) {
	_, err := loadWith(t, []string{"--solver=nope", "--map-path=m", "--scen-path=s"})
	require.Error(t, err)
}

func TestValidateRequiresInputSource(t *testing.T) {
	_, err := loadWith(t, []string{"--solver=cbs"})
	require.Error(t, err)
}

func TestValidateAcceptsYAMLPathInsteadOfScen(t *testing.T) {
	cfg, err := loadWith(t, []string{"--solver=cbs", "--yaml-path=inst.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "inst.yaml", cfg.YAMLPath)
}
