package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces slot keys inside a shared Redis database.
const DefaultRedisPrefix = "bloodconnect:"

// RedisStore keeps every slot as one Redis string under a key prefix.
// Update uses optimistic locking: keys read inside the update are watched and
// the buffered writes are applied with MULTI/EXEC.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. An empty prefix selects
// DefaultRedisPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis connects using opts and verifies the connection.
func OpenRedis(ctx context.Context, opts *redis.Options, prefix string) (*RedisStore, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to open redis store: %w", err)
	}
	return NewRedisStore(client, prefix), nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", key, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) (map[string][]byte, error) {
	keys, err := s.scan(ctx, s.client)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(keys))
	for _, full := range keys {
		v, err := s.client.Get(ctx, full).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list slots: %w", err)
		}
		result[strings.TrimPrefix(full, s.prefix)] = v
	}
	return result, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.scan(ctx, s.client)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear slots: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

func (s *RedisStore) scan(ctx context.Context, c scanner) ([]string, error) {
	var keys []string
	iter := c.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan slots: %w", err)
	}
	return keys, nil
}

func (s *RedisStore) Update(ctx context.Context, fn UpdateFunc) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		r := &redisTxRepository{store: s, tx: tx, writes: make(map[string]redisWrite)}
		if err := fn(ctx, r); err != nil {
			return err
		}
		return r.commit(ctx)
	})
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisWrite struct {
	value   []byte
	deleted bool
}

// redisTxRepository watches every key it reads and buffers writes until
// commit.
type redisTxRepository struct {
	store  *RedisStore
	tx     *redis.Tx
	writes map[string]redisWrite
}

func (r *redisTxRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if w, ok := r.writes[key]; ok {
		if w.deleted {
			return nil, nil
		}
		return clone(w.value), nil
	}

	full := r.store.key(key)
	if err := r.tx.Watch(ctx, full).Err(); err != nil {
		return nil, fmt.Errorf("failed to watch slot[%s]: %w", key, err)
	}
	v, err := r.tx.Get(ctx, full).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return v, nil
}

func (r *redisTxRepository) Set(_ context.Context, key string, value []byte) error {
	r.writes[key] = redisWrite{value: clone(value)}
	return nil
}

func (r *redisTxRepository) Delete(_ context.Context, key string) error {
	r.writes[key] = redisWrite{deleted: true}
	return nil
}

func (r *redisTxRepository) List(ctx context.Context) (map[string][]byte, error) {
	keys, err := r.store.scan(ctx, r.tx)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(keys))
	for _, full := range keys {
		key := strings.TrimPrefix(full, r.store.prefix)
		v, err := r.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result[key] = v
		}
	}
	for key, w := range r.writes {
		if w.deleted {
			delete(result, key)
		} else {
			result[key] = clone(w.value)
		}
	}
	return result, nil
}

func (r *redisTxRepository) Clear(ctx context.Context) error {
	all, err := r.List(ctx)
	if err != nil {
		return err
	}
	for key := range all {
		r.writes[key] = redisWrite{deleted: true}
	}
	return nil
}

func (r *redisTxRepository) commit(ctx context.Context) error {
	if len(r.writes) == 0 {
		return nil
	}
	_, err := r.tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for key, w := range r.writes {
			if w.deleted {
				p.Del(ctx, r.store.key(key))
			} else {
				p.Set(ctx, r.store.key(key), w.value, 0)
			}
		}
		return nil
	})
	return err
}
