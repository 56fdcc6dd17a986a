// Package storage implements the credential store: a small durable key/value
// namespace holding the accounts, session and donors slots.
//
// Every driver stores opaque byte values under string keys and offers the same
// Repository contract. Store adds Update, which runs a read-modify-write over
// several keys as one atomic step (SQL transaction, Redis WATCH/MULTI/EXEC, or
// a mutex for the in-memory driver).
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloodconnect/internal/common"
)

// Slot keys used by the client.
const (
	SlotAccounts = "accounts"
	SlotSession  = "session"
	SlotDonors   = "donors"
)

var (
	// ErrUnsupportedDriver is returned by New for unknown driver names.
	ErrUnsupportedDriver = errors.New("unsupported store driver")

	// ErrConflict means an Update lost a race with another writer.
	// It also matches common.ErrorConflict.
	ErrConflict = fmt.Errorf("store update: %w", common.ErrorConflict)
)

// Repository is a key/value view over the store.
//
// Get returns (nil, nil) when the key is absent. Delete of a missing key is
// not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// UpdateFunc receives a repository bound to the running update. Writes made
// through tx become visible to other readers only if UpdateFunc returns nil.
type UpdateFunc func(ctx context.Context, tx Repository) error

// Store is a Repository with atomic multi-key updates.
type Store interface {
	Repository

	// Update runs fn atomically. fn must use only the tx it is given.
	// A concurrent writer invalidating the update yields an error matching
	// ErrConflict; no retry is attempted.
	Update(ctx context.Context, fn UpdateFunc) error

	Close() error
}
