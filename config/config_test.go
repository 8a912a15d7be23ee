package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 15.0, cfg.BeforeSec)
	assert.Equal(t, 15.0, cfg.AfterSec)
	assert.Equal(t, 1.0, cfg.CadenceSec)
	assert.Equal(t, "flat", cfg.RoutingMode)
	assert.Equal(t, "extracts_output", cfg.OutputRoot)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SOCCEREX_BEFORE_SEC", "20")
	t.Setenv("SOCCEREX_ROUTING_MODE", "categorized")
	t.Setenv("SOCCEREX_OUTPUT_ROOT", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.BeforeSec)
	assert.Equal(t, "categorized", cfg.RoutingMode)
	assert.Equal(t, "/tmp/out", cfg.OutputRoot)
	// Untouched options keep their defaults.
	assert.Equal(t, 15.0, cfg.AfterSec)
}

func TestLoadRejectsBadRoutingMode(t *testing.T) {
	t.Setenv("SOCCEREX_ROUTING_MODE", "by-player")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.BeforeSec = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.CadenceSec = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RoutingMode = "nope"
	assert.Error(t, cfg.Validate())
}
