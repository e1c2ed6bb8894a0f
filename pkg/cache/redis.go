package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis. Entries are JSON-marshalled and
// stored with a TTL, so Redis removes them on expiry by itself.
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. All keys are namespaced
// under prefix.
func NewRedisStore(redisClient *redis.Client, prefix string) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

// Backend implements Store.
func (s *RedisStore) Backend() string { return "redis" }

func (s *RedisStore) key(fingerprint string) string {
	if s.prefix == "" {
		return fingerprint
	}
	return s.prefix + ":" + fingerprint
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, fingerprint string) (*Entry, error) {
	data, err := s.redis.Get(ctx, s.key(fingerprint)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// The TTL should have removed expired entries already, but guard
	// against clock skew between Redis and this process.
	if entry.IsExpired() {
		_ = s.Delete(ctx, fingerprint)
		return nil, ErrCacheMiss
	}

	return &entry, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, fingerprint string, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	ttl := entry.TTL()
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := s.redis.Set(ctx, s.key(fingerprint), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	CacheSize.WithLabelValues(s.Backend()).Add(float64(len(data)))
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, fingerprint string) error {
	if err := s.redis.Del(ctx, s.key(fingerprint)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
