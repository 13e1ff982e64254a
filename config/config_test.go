package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DEFAULT_TIMEZONES", "")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "data/config.json", cfg.ConfigPath)
	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, DefaultTimezoneList, cfg.DefaultTimezones)
}

func TestLoad_ParsesTimezoneList(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DEFAULT_TIMEZONES", " America/Chicago , Asia/Seoul ,,")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, []string{"America/Chicago", "Asia/Seoul"}, cfg.DefaultTimezones)
}

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "")

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}

func TestLoad_PortOverride(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("PORT", "8080")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}
