package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.Simulation.MaxSteps)
	assert.Equal(t, 0.5, cfg.Simulation.VariationMin)
	assert.Equal(t, 1.5, cfg.Simulation.VariationMax)
	assert.Equal(t, RedistributionSequential, cfg.Simulation.Redistribution)
	assert.Equal(t, CriticalWithRedistribution, cfg.Analysis.CriticalMode)
	assert.Equal(t, 1, cfg.Analysis.Workers)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation:
  max_steps: 50
  stop_on_disconnect: true
  redistribution: snapshot
analysis:
  critical_mode: disconnect
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Simulation.MaxSteps)
	assert.True(t, cfg.Simulation.StopOnDisconnect)
	assert.Equal(t, RedistributionSnapshot, cfg.Simulation.Redistribution)
	assert.Equal(t, CriticalDisconnectOnly, cfg.Analysis.CriticalMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 0.8, cfg.Analysis.WarningRatio)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  max_steps: 50\n")
	t.Setenv("GRIDSIM_SIMULATION_MAX_STEPS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Simulation.MaxSteps)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero steps", "simulation:\n  max_steps: 0\n"},
		{"inverted variation", "simulation:\n  variation_min: 2\n  variation_max: 1\n"},
		{"unknown redistribution", "simulation:\n  redistribution: magic\n"},
		{"unknown critical mode", "analysis:\n  critical_mode: maybe\n"},
		{"warning ratio above one", "analysis:\n  warning_ratio: 1.2\n"},
		{"zero warning ratio", "analysis:\n  warning_ratio: 0\n"},
		{"zero workers", "analysis:\n  workers: 0\n"},
		{"unknown level", "logging:\n  level: chatty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
