package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bloodconnect/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   store driver
//	-s string   store DSN
//	-dir string data directory
//	-r string   redis address
//	-l int      login latency in milliseconds
//	-p string   password mode
//	-u string   contact endpoint URL
//	-f string   donor seed file
//	-v string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-dir", "-r", "-l", "-p", "-u", "-f", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreDriver, "d", cfg.StoreDriver, "store driver: memory, sqlite, postgres, redis")
	fs.StringVar(&cfg.StoreDSN, "s", cfg.StoreDSN, "store DSN (SQLite path or PostgreSQL URL)")
	fs.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "data directory for the SQLite file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address host:port")
	latency := fs.Int("l", int(cfg.LoginLatency.Milliseconds()), "login/signup latency (in milliseconds, 0 disables)")
	fs.StringVar(&cfg.PasswordMode, "p", cfg.PasswordMode, "password mode: plain or argon2id")
	fs.StringVar(&cfg.ContactEndpoint, "u", cfg.ContactEndpoint, "contact form endpoint URL")
	fs.StringVar(&cfg.DonorSeedFile, "f", cfg.DonorSeedFile, "YAML donor seed file")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LoginLatency = time.Duration(*latency) * time.Millisecond
}
