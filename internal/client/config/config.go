package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
	"github.com/dmitrijs2005/bloodconnect/internal/client/storage"
)

// Config holds runtime settings for the Blood Connect CLI.
//
// Fields:
//   - StoreDriver: credential store backend (memory, sqlite, postgres, redis).
//   - StoreDSN: SQLite file/DSN or PostgreSQL connection string.
//   - DataDir: directory for the SQLite file when StoreDSN is relative.
//   - Redis*: connection settings for the redis driver.
//   - LoginLatency: simulated delay of login and signup; 0 disables it.
//   - PasswordMode: "plain" or "argon2id".
//   - ContactEndpoint, ContactTimeout: contact form target.
//   - DonorSeedFile: optional YAML donor list loaded at startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StoreDriver string
	StoreDSN    string
	DataDir     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	LoginLatency time.Duration
	PasswordMode string

	ContactEndpoint string
	ContactTimeout  time.Duration

	DonorSeedFile string
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDriver = storage.DriverSQLite
	c.StoreDSN = ""
	c.DataDir = defaultDataDir()
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.RedisPrefix = storage.DefaultRedisPrefix
	c.LoginLatency = services.DefaultLoginLatency
	c.PasswordMode = string(services.PasswordPlain)
	c.ContactEndpoint = services.DefaultContactEndpoint
	c.ContactTimeout = services.DefaultContactTimeout
	c.DonorSeedFile = ""
	c.LogLevel = "warn"
}

// StorageConfig maps c onto the store factory settings.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Driver:        c.StoreDriver,
		DSN:           c.StoreDSN,
		DataDir:       c.DataDir,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "bloodconnect")
	}
	return ".bloodconnect"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
