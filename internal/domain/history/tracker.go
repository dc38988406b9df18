// internal/domain/history/tracker.go
package history

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
)

// Capacity is the maximum number of recently viewed SKUs kept per user
const Capacity = 5

// Store is the per-user recently-viewed list, most-recent-first,
// de-duplicated and capped at Capacity entries
type Store interface {
	Push(ctx context.Context, userID, skuID uint) error
	Recent(ctx context.Context, userID uint, limit int) ([]uint, error)
}

// RedisStore keeps each user's history in a Redis list under history_<user_id>
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed history store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func historyKey(userID uint) string {
	return fmt.Sprintf("history_%d", userID)
}

// Push records a SKU view: any existing occurrence is removed, the id is
// pushed to the front, then the list is truncated to Capacity entries
func (s *RedisStore) Push(ctx context.Context, userID, skuID uint) error {
	key := historyKey(userID)
	member := strconv.FormatUint(uint64(skuID), 10)

	pipe := s.client.Pipeline()
	pipe.LRem(ctx, key, 0, member)
	pipe.LPush(ctx, key, member)
	pipe.LTrim(ctx, key, 0, Capacity-1)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns up to limit SKU ids, most recent first
func (s *RedisStore) Recent(ctx context.Context, userID uint, limit int) ([]uint, error) {
	if limit <= 0 || limit > Capacity {
		limit = Capacity
	}

	members, err := s.client.LRange(ctx, historyKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	skuIDs := make([]uint, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseUint(member, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("corrupt history entry %q: %w", member, err)
		}
		skuIDs = append(skuIDs, uint(id))
	}
	return skuIDs, nil
}

// Catalog is the slice of the catalog service the tracker needs
type Catalog interface {
	GetSKUs(skuIDs []uint) ([]catalog.SKU, error)
}

// Tracker records product views and resolves the recent list
type Tracker struct {
	store   Store
	catalog Catalog
}

// NewTracker creates a new view-history tracker
func NewTracker(store Store, cat Catalog) *Tracker {
	return &Tracker{
		store:   store,
		catalog: cat,
	}
}

// RecordView notes that a user viewed a SKU detail page
func (t *Tracker) RecordView(ctx context.Context, userID, skuID uint) error {
	return t.store.Push(ctx, userID, skuID)
}

// RecentSKUs returns the user's recently viewed SKUs, resolved against
// the catalog, most recent first
func (t *Tracker) RecentSKUs(ctx context.Context, userID uint) ([]catalog.SKU, error) {
	skuIDs, err := t.store.Recent(ctx, userID, Capacity)
	if err != nil {
		return nil, err
	}
	return t.catalog.GetSKUs(skuIDs)
}
