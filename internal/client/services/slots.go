package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bloodconnect/internal/client/storage"
)

// readSlot decodes the JSON value under key into v. found is false when the
// slot is absent. Malformed JSON yields an error matching errCorruptSlot.
func readSlot(ctx context.Context, r storage.Repository, key string, v any) (found bool, err error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w[%s]: %w", errCorruptSlot, key, err)
	}
	return true, nil
}

func writeSlot(ctx context.Context, r storage.Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot[%s]: %w", key, err)
	}
	return r.Set(ctx, key, raw)
}
