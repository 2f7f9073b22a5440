package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// KVStore is the cache surface used by the repositories, so tests can
// swap Redis for an in-memory map.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

type RedisKVStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisKVStore(client *redis.Client, logger *zap.Logger) *RedisKVStore {
	return &RedisKVStore{client: client, logger: logger}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// DeletePrefix removes every key starting with prefix and returns how
// many were deleted.
func (r *RedisKVStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	const scanCount = 100
	pattern := prefix + "*"

	var keysToDelete []string
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return 0, fmt.Errorf("scan %q: %w", pattern, err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return 0, nil
	}

	pipe := r.client.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("delete %d keys matching %q: %w", len(keysToDelete), pattern, err)
	}

	r.logger.Debug("cache invalidated", zap.String("pattern", pattern), zap.Int("deleted", len(keysToDelete)))
	return len(keysToDelete), nil
}

// Key hashes parts into a fixed-length key under prefix. The order of
// parts does not matter.
func Key(prefix string, parts ...string) string {
	sorted := append([]string(nil), parts...)
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, "&")))
	return prefix + hex.EncodeToString(sum[:])
}
