package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloodconnect/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// serialization_failure
const pgSerializationFailure = "40001"

// OpenPostgres connects to PostgreSQL and applies the schema. Several client
// instances may share one database.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres store: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open postgres store: %w", err)
	}

	if err := RunMigrations(ctx, db, "postgres", "postgres"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewPostgresStore(db), nil
}

// NewPostgresStore wraps an already migrated PostgreSQL database. Updates run
// at SERIALIZABLE so concurrent signups for one email cannot both commit.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		SQLRepository: NewSQLRepository(db, dbx.Dollar),
		db:            db,
		txOpts:        &sql.TxOptions{Isolation: sql.LevelSerializable},
		conflict:      isPgSerializationFailure,
	}
}

func isPgSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure
}
