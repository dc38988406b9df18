package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
)

// memStore is an in-memory Store honoring the contract: most recent
// first, de-duplicated, capped at Capacity entries
type memStore struct {
	lists map[uint][]uint
}

func newMemStore() *memStore {
	return &memStore{lists: make(map[uint][]uint)}
}

func (s *memStore) Push(ctx context.Context, userID, skuID uint) error {
	list := s.lists[userID]

	filtered := make([]uint, 0, len(list)+1)
	filtered = append(filtered, skuID)
	for _, id := range list {
		if id != skuID {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) > Capacity {
		filtered = filtered[:Capacity]
	}

	s.lists[userID] = filtered
	return nil
}

func (s *memStore) Recent(ctx context.Context, userID uint, limit int) ([]uint, error) {
	list := s.lists[userID]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

type catalogMock struct{ mock.Mock }

func (m *catalogMock) GetSKUs(skuIDs []uint) ([]catalog.SKU, error) {
	args := m.Called(skuIDs)
	skus, _ := args.Get(0).([]catalog.SKU)
	return skus, args.Error(1)
}

func TestTracker_ViewingMovesSKUToFront(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tracker := NewTracker(store, new(catalogMock))

	// Existing history: 3 most recent, then 1, then 2
	for _, id := range []uint{2, 1, 3} {
		assert.NoError(t, tracker.RecordView(ctx, 1, id))
	}

	// Re-viewing 1 moves it to the front without duplicating it
	assert.NoError(t, tracker.RecordView(ctx, 1, 1))
	ids, err := store.Recent(ctx, 1, Capacity)
	assert.NoError(t, err)
	assert.Equal(t, []uint{1, 3, 2}, ids)

	// New SKUs are prepended
	assert.NoError(t, tracker.RecordView(ctx, 1, 9))
	ids, _ = store.Recent(ctx, 1, Capacity)
	assert.Equal(t, []uint{9, 1, 3, 2}, ids)

	assert.NoError(t, tracker.RecordView(ctx, 1, 8))
	ids, _ = store.Recent(ctx, 1, Capacity)
	assert.Equal(t, []uint{8, 9, 1, 3, 2}, ids)
}

func TestTracker_HistoryIsCapped(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tracker := NewTracker(store, new(catalogMock))

	for id := uint(1); id <= 7; id++ {
		assert.NoError(t, tracker.RecordView(ctx, 1, id))
	}

	ids, err := store.Recent(ctx, 1, Capacity)
	assert.NoError(t, err)
	assert.Len(t, ids, Capacity)
	assert.Equal(t, []uint{7, 6, 5, 4, 3}, ids)
}

func TestTracker_RecentSKUsResolvesAgainstCatalog(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cat := new(catalogMock)
	tracker := NewTracker(store, cat)

	assert.NoError(t, tracker.RecordView(ctx, 1, 2))
	assert.NoError(t, tracker.RecordView(ctx, 1, 5))

	cat.On("GetSKUs", []uint{5, 2}).Return([]catalog.SKU{
		{ID: 5, Name: "Milk 1L"},
		{ID: 2, Name: "Strawberry 500g"},
	}, nil)

	skus, err := tracker.RecentSKUs(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, skus, 2)
	assert.Equal(t, uint(5), skus[0].ID)
	cat.AssertExpectations(t)
}

func TestTracker_HistoriesAreSeparatePerUser(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tracker := NewTracker(store, new(catalogMock))

	assert.NoError(t, tracker.RecordView(ctx, 1, 10))
	assert.NoError(t, tracker.RecordView(ctx, 2, 20))

	ids, _ := store.Recent(ctx, 1, Capacity)
	assert.Equal(t, []uint{10}, ids)
	ids, _ = store.Recent(ctx, 2, Capacity)
	assert.Equal(t, []uint{20}, ids)
}
