// internal/domain/catalog/repository.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/dailyfresh-backend/internal/config"
	"gorm.io/gorm"
)

// GormIndexRepository loads homepage rows through gorm
type GormIndexRepository struct {
	db *gorm.DB
}

// NewIndexRepository creates a gorm-backed index repository
func NewIndexRepository(db *gorm.DB) *GormIndexRepository {
	return &GormIndexRepository{db: db}
}

func (r *GormIndexRepository) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).Order("sort_order").Find(&categories).Error
	return categories, err
}

func (r *GormIndexRepository) Slides(ctx context.Context) ([]SlideItem, error) {
	var slides []SlideItem
	err := r.db.WithContext(ctx).Preload("SKU").Order(`"index"`).Find(&slides).Error
	return slides, err
}

func (r *GormIndexRepository) Promotions(ctx context.Context) ([]Promotion, error) {
	var promotions []Promotion
	err := r.db.WithContext(ctx).Order(`"index"`).Find(&promotions).Error
	return promotions, err
}

func (r *GormIndexRepository) Showcases(ctx context.Context, categoryID uint, displayType int) ([]CategoryShowcase, error) {
	var showcases []CategoryShowcase
	err := r.db.WithContext(ctx).Preload("SKU").
		Where("category_id = ? AND display_type = ?", categoryID, displayType).
		Order(`"index"`).Find(&showcases).Error
	return showcases, err
}

// RedisIndexCache stores the assembled homepage context as a JSON blob
// under a single key with a fixed TTL
type RedisIndexCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewIndexCache creates a Redis-backed index cache
func NewIndexCache(client *redis.Client, cfg *config.Config) *RedisIndexCache {
	return &RedisIndexCache{
		client: client,
		key:    cfg.Cache.IndexKey,
		ttl:    cfg.Cache.IndexTTL,
	}
}

func (c *RedisIndexCache) Get(ctx context.Context) (*IndexPage, error) {
	data, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var page IndexPage
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return nil, fmt.Errorf("failed to decode cached index page: %w", err)
	}
	return &page, nil
}

func (c *RedisIndexCache) Set(ctx context.Context, page *IndexPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode index page: %w", err)
	}
	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}

func (c *RedisIndexCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
