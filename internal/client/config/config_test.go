package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
	"github.com/dmitrijs2005/bloodconnect/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, storage.DriverSQLite, c.StoreDriver)
	assert.Equal(t, defaultDataDir(), c.DataDir)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, storage.DefaultRedisPrefix, c.RedisPrefix)
	assert.Equal(t, time.Second, c.LoginLatency)
	assert.Equal(t, "plain", c.PasswordMode)
	assert.Equal(t, services.DefaultContactEndpoint, c.ContactEndpoint)
	assert.Equal(t, 10*time.Second, c.ContactTimeout)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Chdir(t.TempDir())

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, storage.DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, time.Second, cfg.LoginLatency)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(".env", []byte("BLOODCONNECT_STORE_DRIVER=redis\nBLOODCONNECT_LOG_LEVEL=info\nBLOODCONNECT_REDIS_DB=2\n"), 0o600))
	t.Setenv("BLOODCONNECT_LOG_LEVEL", "error")
	cfgPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"store_driver": "postgres",
		"store_dsn":    "postgres://json",
	})
	os.Args = []string{"testbin", "-c", cfgPath, "-s", "postgres://flag"}

	cfg := LoadConfig()

	assert.Equal(t, "postgres", cfg.StoreDriver)     // json over .env
	assert.Equal(t, "postgres://flag", cfg.StoreDSN) // flag over json
	assert.Equal(t, "error", cfg.LogLevel)           // environment over .env
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestStorageConfig(t *testing.T) {
	c := Config{StoreDriver: "redis", StoreDSN: "x", DataDir: "d", RedisAddr: "a", RedisPassword: "p", RedisDB: 3, RedisPrefix: "bc:"}

	assert.Equal(t, storage.Config{
		Driver: "redis", DSN: "x", DataDir: "d",
		RedisAddr: "a", RedisPassword: "p", RedisDB: 3, RedisPrefix: "bc:",
	}, c.StorageConfig())
}
