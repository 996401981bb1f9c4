package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"quip/internal/domain"
)

// RedisStore keeps the session record under a single redis key.
type RedisStore struct {
	rdb  *goredis.Client
	opts options
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr string, opts ...Option) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(rdb, opts...), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *goredis.Client, opts ...Option) *RedisStore {
	return &RedisStore{rdb: rdb, opts: buildOptions(opts)}
}

// Close closes the underlying client.
func (s *RedisStore) Close() error { return s.rdb.Close() }

// LoadSession reads and decodes the stored identity.
func (s *RedisStore) LoadSession(ctx context.Context) (domain.Identity, bool, error) {
	b, err := s.rdb.Get(ctx, s.opts.key.String()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Identity{}, false, nil
	}
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("redis get: %w", err)
	}
	id, err := decodeRecord(b, s.opts.passphrase)
	if err != nil {
		return domain.Identity{}, false, err
	}
	return id, true, nil
}

// SaveSession overwrites the key with no expiry.
func (s *RedisStore) SaveSession(ctx context.Context, id domain.Identity) error {
	b, err := encodeRecord(id, s.opts.passphrase)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.opts.key.String(), b, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// ClearSession deletes the key.
func (s *RedisStore) ClearSession(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.opts.key.String()).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Compile-time assertion that RedisStore implements domain.SessionStore.
var _ domain.SessionStore = (*RedisStore)(nil)
