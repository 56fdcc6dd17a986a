package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bloodconnect/internal/filex"
	"github.com/redis/go-redis/v9"
)

// Driver names accepted by New.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// DefaultSQLiteFile is used when the sqlite driver gets no DSN.
const DefaultSQLiteFile = "bloodconnect.db"

type Config struct {
	Driver string
	// DSN is a file path or SQLite DSN for sqlite, a connection string for
	// postgres. Ignored by memory and redis.
	DSN string
	// DataDir holds the SQLite file when DSN is empty or relative.
	DataDir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// New opens the store selected by cfg.Driver.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStore(), nil

	case DriverSQLite, "":
		dsn, err := sqliteDSN(cfg)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, dsn)

	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres store: empty DSN")
		}
		return OpenPostgres(ctx, cfg.DSN)

	case DriverRedis:
		return OpenRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisPrefix)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func sqliteDSN(cfg Config) (string, error) {
	if cfg.DSN == ":memory:" || strings.HasPrefix(cfg.DSN, "file:") {
		return cfg.DSN, nil
	}

	name := cfg.DSN
	if name == "" {
		name = DefaultSQLiteFile
	}

	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	path, err := filex.PathIn(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to prepare data dir: %w", err)
	}
	return path, nil
}
