package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/models"
)

// countingStore is a HostelStore that records how often it is read.
type countingStore struct {
	hostels   map[string]models.Hostel
	listCalls int
	getCalls  int
	failList  error
}

func newCountingStore(hostels ...models.Hostel) *countingStore {
	s := &countingStore{hostels: make(map[string]models.Hostel)}
	for _, h := range hostels {
		s.hostels[h.ID] = h
	}
	return s
}

func (s *countingStore) List(ctx context.Context, opts ListOptions) (Page, error) {
	s.listCalls++
	if s.failList != nil {
		return Page{}, s.failList
	}
	out := make([]models.Hostel, 0, len(s.hostels))
	for _, h := range s.hostels {
		out = append(out, h)
	}
	return newPage(out, int64(len(out)), opts.Limit, opts.Page), nil
}

func (s *countingStore) ListAvailable(ctx context.Context, limit, page int) (Page, error) {
	s.listCalls++
	return newPage(nil, 0, 10, 1), nil
}

func (s *countingStore) Search(ctx context.Context, query string, limit int) ([]models.Hostel, error) {
	return nil, nil
}

func (s *countingStore) Get(ctx context.Context, id string) (models.Hostel, error) {
	s.getCalls++
	h, ok := s.hostels[id]
	if !ok {
		return models.Hostel{}, ErrNotFound
	}
	return h, nil
}

func (s *countingStore) Create(ctx context.Context, h *models.Hostel) error {
	s.hostels[h.ID] = *h
	return nil
}

func (s *countingStore) Update(ctx context.Context, h *models.Hostel) error {
	if _, ok := s.hostels[h.ID]; !ok {
		return ErrNotFound
	}
	s.hostels[h.ID] = *h
	return nil
}

func (s *countingStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.hostels[id]; !ok {
		return ErrNotFound
	}
	delete(s.hostels, id)
	return nil
}

func setupCachedStore(hostels ...models.Hostel) (*CachedHostelStore, *countingStore, *fakeKVStore) {
	inner := newCountingStore(hostels...)
	kv := newFakeKVStore()
	return NewCachedHostelStore(inner, kv, time.Minute, zap.NewNop()), inner, kv
}

func TestCachedHostelStore_ListHitsCacheOnSecondCall(t *testing.T) {
	store, inner, _ := setupCachedStore(models.Hostel{ID: "h1", Name: "Sunrise", RentPerBed: 8000})
	ctx := context.Background()

	first, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	second, err := store.List(ctx, ListOptions{Limit: 10, Page: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listCalls)
	assert.Equal(t, first, second)
	require.Len(t, second.Hostels, 1)
	assert.Equal(t, "Sunrise", second.Hostels[0].Name)
}

func TestCachedHostelStore_DifferentOptionsMiss(t *testing.T) {
	store, inner, _ := setupCachedStore()
	ctx := context.Background()

	_, err := store.List(ctx, ListOptions{Area: "Saddar"})
	require.NoError(t, err)
	_, err = store.List(ctx, ListOptions{Area: "Latifabad"})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedHostelStore_WriteInvalidates(t *testing.T) {
	store, inner, kv := setupCachedStore(models.Hostel{ID: "h1"})
	ctx := context.Background()

	_, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	_, err = store.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, 2, kv.len())

	require.NoError(t, store.Create(ctx, &models.Hostel{ID: "h2"}))
	assert.Equal(t, 0, kv.len())

	page, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
	assert.Len(t, page.Hostels, 2)
}

func TestCachedHostelStore_FailedWriteKeepsCache(t *testing.T) {
	store, _, kv := setupCachedStore()
	ctx := context.Background()

	_, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)

	err = store.Delete(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, kv.len())
}

func TestCachedHostelStore_ErrorsAreNotCached(t *testing.T) {
	store, inner, kv := setupCachedStore()
	inner.failList = errors.New("mongo down")
	ctx := context.Background()

	_, err := store.List(ctx, ListOptions{})
	assert.Error(t, err)
	assert.Equal(t, 0, kv.len())

	_, err = store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, kv.len())
}

func TestCachedHostelStore_RejectsBadOptions(t *testing.T) {
	store, inner, _ := setupCachedStore()

	_, err := store.List(context.Background(), ListOptions{Limit: 500})

	assert.ErrorIs(t, err, ErrBadOption)
	assert.Equal(t, 0, inner.listCalls)
}
