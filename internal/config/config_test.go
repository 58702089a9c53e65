package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every other key has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, MemoryStorage, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.GameTTL)
		assert.Equal(t, 500*time.Millisecond, conf.Bot.ThinkDelay)
		assert.Equal(t, 5*time.Second, conf.Bot.MoveTimeout)
		assert.Zero(t, conf.Bot.Seed)
	})

	t.Run("File values are read", func(t *testing.T) {
		path := writeConfig(t, `
storage: redis
redis:
  host: cache
  port: "6380"
bot:
  think-delay: 1s
  seed: 42
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, RedisStorage, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Second, conf.Bot.ThinkDelay)
		assert.Equal(t, int64(42), conf.Bot.Seed)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8000\"\n")
		t.Setenv("HTTP_PORT", "8001")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "8001", conf.HTTPPort)
	})

	t.Run("Unknown storage is rejected", func(t *testing.T) {
		path := writeConfig(t, "storage: sqlite\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite")
	})

	t.Run("Missing file panics in MustLoad", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
