// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Store is the per-user cart hash: SKU id → quantity.
// Implementations must treat an absent field as quantity 0 and deletion
// of an absent field as success.
type Store interface {
	Quantity(ctx context.Context, userID, skuID uint) (int, error)
	SetQuantity(ctx context.Context, userID, skuID uint, quantity int) error
	Remove(ctx context.Context, userID uint, skuIDs ...uint) error
	All(ctx context.Context, userID uint) (map[uint]int, error)
	TotalCount(ctx context.Context, userID uint) (int, error)
}

// RedisStore keeps each user's cart in a Redis hash under cart_<user_id>
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart_%d", userID)
}

func skuField(skuID uint) string {
	return strconv.FormatUint(uint64(skuID), 10)
}

// Quantity returns the stored quantity for one SKU, 0 when absent
func (s *RedisStore) Quantity(ctx context.Context, userID, skuID uint) (int, error) {
	val, err := s.client.HGet(ctx, cartKey(userID), skuField(skuID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	quantity, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt cart quantity for sku %d: %w", skuID, err)
	}
	return quantity, nil
}

// SetQuantity overwrites the stored quantity for one SKU
func (s *RedisStore) SetQuantity(ctx context.Context, userID, skuID uint, quantity int) error {
	return s.client.HSet(ctx, cartKey(userID), skuField(skuID), quantity).Err()
}

// Remove deletes cart lines. Absent fields are a no-op success.
func (s *RedisStore) Remove(ctx context.Context, userID uint, skuIDs ...uint) error {
	if len(skuIDs) == 0 {
		return nil
	}
	fields := make([]string, len(skuIDs))
	for i, id := range skuIDs {
		fields[i] = skuField(id)
	}
	return s.client.HDel(ctx, cartKey(userID), fields...).Err()
}

// All returns every cart line for a user
func (s *RedisStore) All(ctx context.Context, userID uint) (map[uint]int, error) {
	raw, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	lines := make(map[uint]int, len(raw))
	for field, val := range raw {
		skuID, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart field %q: %w", field, err)
		}
		quantity, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart quantity for sku %s: %w", field, err)
		}
		lines[uint(skuID)] = quantity
	}
	return lines, nil
}

// TotalCount sums the quantities of all cart lines
func (s *RedisStore) TotalCount(ctx context.Context, userID uint) (int, error) {
	vals, err := s.client.HVals(ctx, cartKey(userID)).Result()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, val := range vals {
		quantity, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("corrupt cart quantity: %w", err)
		}
		total += quantity
	}
	return total, nil
}
