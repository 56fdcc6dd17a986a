package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bloodconnect/internal/flagx"
	"github.com/dmitrijs2005/bloodconnect/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from an explicit zero.
type JsonConfig struct {
	StoreDriver *string `json:"store_driver"`
	StoreDSN    *string `json:"store_dsn"`
	DataDir     *string `json:"data_dir"`

	RedisAddr     *string `json:"redis_addr"`
	RedisPassword *string `json:"redis_password"`
	RedisDB       *int    `json:"redis_db"`
	RedisPrefix   *string `json:"redis_prefix"`

	LoginLatency *timex.Duration `json:"login_latency"`
	PasswordMode *string         `json:"password_mode"`

	ContactEndpoint *string         `json:"contact_endpoint"`
	ContactTimeout  *timex.Duration `json:"contact_timeout"`

	DonorSeedFile *string `json:"donor_seed_file"`
	LogLevel      *string `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing happens. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	set(&cfg.StoreDriver, jc.StoreDriver)
	set(&cfg.StoreDSN, jc.StoreDSN)
	set(&cfg.DataDir, jc.DataDir)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisPassword, jc.RedisPassword)
	set(&cfg.RedisDB, jc.RedisDB)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.PasswordMode, jc.PasswordMode)
	set(&cfg.ContactEndpoint, jc.ContactEndpoint)
	set(&cfg.DonorSeedFile, jc.DonorSeedFile)
	set(&cfg.LogLevel, jc.LogLevel)

	if jc.LoginLatency != nil {
		cfg.LoginLatency = jc.LoginLatency.Duration
	}
	if jc.ContactTimeout != nil {
		cfg.ContactTimeout = jc.ContactTimeout.Duration
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
