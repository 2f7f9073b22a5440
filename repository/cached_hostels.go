package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/cache"
	"github.com/dcode-github/hostel_listing_system/backend/models"
)

const hostelCachePrefix = "hostels:"

// CachedHostelStore serves reads from the KV cache when it can and drops
// every cached hostel entry after a successful write.
type CachedHostelStore struct {
	next   HostelStore
	kv     cache.KVStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedHostelStore(next HostelStore, kv cache.KVStore, ttl time.Duration, logger *zap.Logger) *CachedHostelStore {
	return &CachedHostelStore{next: next, kv: kv, ttl: ttl, logger: logger}
}

func (s *CachedHostelStore) List(ctx context.Context, opts ListOptions) (Page, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return Page{}, err
	}
	key := cache.Key(hostelCachePrefix+"list:", opts.cacheParts()...)
	return cached(ctx, s, key, func() (Page, error) { return s.next.List(ctx, opts) })
}

func (s *CachedHostelStore) ListAvailable(ctx context.Context, limit, page int) (Page, error) {
	key := cache.Key(hostelCachePrefix+"available:", fmt.Sprintf("limit=%d", limit), fmt.Sprintf("page=%d", page))
	return cached(ctx, s, key, func() (Page, error) { return s.next.ListAvailable(ctx, limit, page) })
}

func (s *CachedHostelStore) Search(ctx context.Context, query string, limit int) ([]models.Hostel, error) {
	return s.next.Search(ctx, query, limit)
}

func (s *CachedHostelStore) Get(ctx context.Context, id string) (models.Hostel, error) {
	key := hostelCachePrefix + "id:" + id
	return cached(ctx, s, key, func() (models.Hostel, error) { return s.next.Get(ctx, id) })
}

func (s *CachedHostelStore) Create(ctx context.Context, h *models.Hostel) error {
	if err := s.next.Create(ctx, h); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedHostelStore) Update(ctx context.Context, h *models.Hostel) error {
	if err := s.next.Update(ctx, h); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedHostelStore) Delete(ctx context.Context, id string) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedHostelStore) invalidate(ctx context.Context) {
	n, err := s.kv.DeletePrefix(ctx, hostelCachePrefix)
	if err != nil {
		s.logger.Error("hostel cache invalidation failed", zap.Error(err))
		return
	}
	s.logger.Info("hostel cache invalidated", zap.Int("keys", n))
}

// cached is a read-through lookup. Cache failures are logged and fall
// through to load.
func cached[T any](ctx context.Context, s *CachedHostelStore, key string, load func() (T, error)) (T, error) {
	var zero T

	raw, err := s.kv.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		jsonErr := json.Unmarshal([]byte(raw), &v)
		if jsonErr == nil {
			s.logger.Debug("cache hit", zap.String("key", key))
			return v, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(jsonErr))
	case !errors.Is(err, cache.ErrCacheMiss):
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	v, err := load()
	if err != nil {
		return zero, err
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	if err := s.kv.Set(ctx, key, string(encoded), s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
