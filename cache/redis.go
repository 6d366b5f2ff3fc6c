package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for deployments where several
// processes share one content cache. The store owns the client handed to it
// and closes it on Close.
type RedisStore struct {
	rdb *redis.Client

	prefix string
	// ttl applies to every entry; zero means entries never expire.
	ttl time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix. Default is "playerpool:cache".
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithTTL sets the per-entry expiry.
func WithTTL(d time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = d }
}

// NewRedisStore creates a Redis-backed content cache around rdb.
func NewRedisStore(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		prefix: "playerpool:cache",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, s.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	return s.rdb.Set(ctx, s.prefix+":"+key, data, s.ttl).Err()
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
