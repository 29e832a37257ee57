package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, "data/slumber.db", c.DBPath)
	assert.Equal(t, "main", c.Slot)
	assert.Equal(t, uint(100), c.Years)
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SLUMBER_SEED", "7")
	t.Setenv("SLUMBER_YEARS", "2500")
	t.Setenv("SLUMBER_LOG_LEVEL", "debug")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, uint(2500), c.Years)
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("SLUMBER_SEED", "not-a-number")
	_, err := Load()
	require.Error(t, err)
}
