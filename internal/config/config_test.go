package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	require.NoError(t, os.Setenv(key, value))
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/eventcal.db", cfg.DBPath)
	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "deepseek-chat", cfg.AIModel)
	assert.False(t, cfg.AIEnabled(), "AIEnabled without API key")
	assert.False(t, cfg.UseRedisCache(), "UseRedisCache without Redis URL")
	assert.False(t, cfg.DoSeed)
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "EVENTCAL_DB_PATH", "/custom/path.db")
	setEnv(t, "EVENTCAL_SERVER_HOST", "0.0.0.0")
	setEnv(t, "EVENTCAL_SERVER_PORT", "3000")
	setEnv(t, "EVENTCAL_ENV", "production")
	setEnv(t, "EVENTCAL_AI_API_KEY", "sk-test")
	setEnv(t, "EVENTCAL_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/custom/path.db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:3000", cfg.ServerAddr())
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.AIEnabled())
	assert.True(t, cfg.UseRedisCache())
}

func TestLoad_InvalidPort(t *testing.T) {
	os.Clearenv()
	setEnv(t, "EVENTCAL_SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err, "out-of-range port should fail validation")
}

func TestLoad_InvalidEnv(t *testing.T) {
	os.Clearenv()
	setEnv(t, "EVENTCAL_ENV", "staging")

	_, err := Load()
	assert.Error(t, err, "unknown environment name should fail validation")
}
