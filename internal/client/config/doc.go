// Package config loads runtime configuration for the Blood Connect CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-e/-env, else ./.env when present) merged with
//     BLOODCONNECT_* environment variables; real variables win.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   store driver: memory, sqlite, postgres, redis
//	-s string   store DSN (SQLite path or PostgreSQL URL)
//	-dir string data directory for the SQLite file
//	-r string   redis address host:port
//	-l int      login/signup latency in milliseconds (0 disables)
//	-p string   password mode: plain or argon2id
//	-u string   contact form endpoint URL
//	-f string   YAML donor seed file
//	-v string   log level: debug, info, warn, error
//
// Environment variables
//
//	BLOODCONNECT_STORE_DRIVER, BLOODCONNECT_STORE_DSN, BLOODCONNECT_DATA_DIR,
//	BLOODCONNECT_REDIS_ADDR, BLOODCONNECT_REDIS_PASSWORD, BLOODCONNECT_REDIS_DB,
//	BLOODCONNECT_REDIS_PREFIX, BLOODCONNECT_LOGIN_LATENCY ("1s"),
//	BLOODCONNECT_PASSWORD_MODE, BLOODCONNECT_CONTACT_ENDPOINT,
//	BLOODCONNECT_CONTACT_TIMEOUT, BLOODCONNECT_DONOR_SEED_FILE,
//	BLOODCONNECT_LOG_LEVEL
//
// # JSON schema
//
// The JSON loader uses timex.Duration for durations, so values can be either
// strings like "1s" or integer nanoseconds. Absent keys keep earlier values:
//
//	{
//	  "store_driver": "sqlite",
//	  "store_dsn": "bloodconnect.db",
//	  "login_latency": "1s",
//	  "password_mode": "argon2id",
//	  "contact_timeout": "10s",
//	  "log_level": "info"
//	}
//
// Malformed input from any source panics at startup.
package config
