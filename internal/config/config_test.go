package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 30, cfg.OpenSessionCacheTTLSeconds)
	assert.Equal(t, "50", cfg.LargeDiscrepancy().String())
	assert.Equal(t, "1000", cfg.LargeCashOut().String())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LARGE_DISCREPANCY_THRESHOLD", "25.5")
	t.Setenv("LARGE_CASH_OUT_THRESHOLD", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "25.5", cfg.LargeDiscrepancy().String())
	assert.Equal(t, "500", cfg.LargeCashOut().String())
}
