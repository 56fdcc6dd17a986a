package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloodconnect/internal/common"
	"github.com/dmitrijs2005/bloodconnect/internal/flagx"
	"github.com/joho/godotenv"
)

// defaultEnvFile is read when present and no -e flag is given.
const defaultEnvFile = ".env"

// parseEnv overlays Config with BLOODCONNECT_* variables taken from a dotenv
// file and the process environment. It panics on an unreadable explicit env
// file or on malformed values.
func parseEnv(cfg *Config) {
	vars := make(map[string]string)

	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		maps.Copy(vars, fileVars)
	case explicit || !errors.Is(err, fs.ErrNotExist):
		panic(err)
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, common.EnvPrefix) {
			vars[k] = v
		}
	}

	applyEnv(cfg, vars)
}

func applyEnv(cfg *Config, vars map[string]string) {
	str := func(name string, dst *string) {
		if v, ok := vars[common.EnvPrefix+name]; ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := vars[common.EnvPrefix+name]; ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("STORE_DRIVER", &cfg.StoreDriver)
	str("STORE_DSN", &cfg.StoreDSN)
	str("DATA_DIR", &cfg.DataDir)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("REDIS_PREFIX", &cfg.RedisPrefix)
	str("PASSWORD_MODE", &cfg.PasswordMode)
	str("CONTACT_ENDPOINT", &cfg.ContactEndpoint)
	str("DONOR_SEED_FILE", &cfg.DonorSeedFile)
	str("LOG_LEVEL", &cfg.LogLevel)
	dur("LOGIN_LATENCY", &cfg.LoginLatency)
	dur("CONTACT_TIMEOUT", &cfg.ContactTimeout)

	if v, ok := vars[common.EnvPrefix+"REDIS_DB"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RedisDB = n
	}
}
