package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"STORAGE_BACKEND", "TRACKER_FILE", "SHARE_URL", "SHARE_TOKEN", "SHARE_TIMEOUT",
		"SHARE_TARGET", "TG_TOKEN", "TG_CHAT_ID", "TZ_NAME", "DEFAULT_GOALS", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "fitness_data.json", cfg.Storage.FilePath)
	assert.Equal(t, DefaultShareURL, cfg.Share.URL)
	assert.Equal(t, 10*time.Second, cfg.Share.Timeout)
	assert.Equal(t, ShareTargetHTTP, cfg.Share.Target)
	assert.False(t, cfg.Telegram.Enabled())
	assert.Equal(t, time.UTC, cfg.Schedule.Location)
	assert.Empty(t, cfg.DefaultGoals)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownShareTarget(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("TG_TOKEN", "")
	t.Setenv("SHARE_TARGET", "telgram")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown SHARE_TARGET "telgram"`)

	t.Setenv("SHARE_TARGET", "HTTP")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ShareTargetHTTP, cfg.Share.Target)
}

func TestLoad_PostgresNeedsURL(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BotNeedsChatID(t *testing.T) {
	t.Setenv("TG_TOKEN", "123:abc")
	t.Setenv("TG_CHAT_ID", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TG_CHAT_ID", "42")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
}

func TestParseGoals(t *testing.T) {
	goals, err := ParseGoals("steps=10000, sleep = 8 ,")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"steps": 10000, "sleep": 8}, goals)

	_, err = ParseGoals("steps")
	assert.Error(t, err)

	_, err = ParseGoals("steps=many")
	assert.Error(t, err)
}
