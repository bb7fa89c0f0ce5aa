package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdcook/tlox/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, 255, cfg.MaxCallDepth)
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("LOX_NO_COLOR", "true")
	t.Setenv("LOX_MAX_CALL_DEPTH", "10")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, 10, cfg.MaxCallDepth)
}
