// internal/domain/catalog/homepage.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by an IndexCache when no assembled page is stored
var ErrCacheMiss = errors.New("index page not cached")

// IndexRepository loads the raw catalog rows the homepage is assembled from
type IndexRepository interface {
	Categories(ctx context.Context) ([]Category, error)
	Slides(ctx context.Context) ([]SlideItem, error)
	Promotions(ctx context.Context) ([]Promotion, error)
	Showcases(ctx context.Context, categoryID uint, displayType int) ([]CategoryShowcase, error)
}

// IndexCache stores the assembled homepage context
type IndexCache interface {
	Get(ctx context.Context) (*IndexPage, error)
	Set(ctx context.Context, page *IndexPage) error
	Invalidate(ctx context.Context) error
}

// IndexCategory is a category with its homepage sub-lists attached
type IndexCategory struct {
	Category
	TextSKUs  []CategoryShowcase `json:"text_skus"`
	ImageSKUs []CategoryShowcase `json:"image_skus"`
}

// IndexPage is the assembled homepage context.
// The per-user cart count is never part of it; handlers merge that in per request.
type IndexPage struct {
	Categories  []IndexCategory `json:"categories"`
	Slides      []SlideItem     `json:"slides"`
	Promotions  []Promotion     `json:"promotions"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// HomepageService assembles and caches the homepage context
type HomepageService struct {
	repo  IndexRepository
	cache IndexCache
}

// NewHomepageService creates a new homepage service
func NewHomepageService(repo IndexRepository, cache IndexCache) *HomepageService {
	return &HomepageService{
		repo:  repo,
		cache: cache,
	}
}

// GetIndexPage returns the cached homepage context, assembling and storing
// it on a miss. The second return value reports whether the cache was hit.
func (s *HomepageService) GetIndexPage(ctx context.Context) (*IndexPage, bool, error) {
	page, err := s.cache.Get(ctx)
	if err == nil {
		return page, true, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, false, fmt.Errorf("failed to read index cache: %w", err)
	}

	page, err = s.Rebuild(ctx)
	if err != nil {
		return nil, false, err
	}
	return page, false, nil
}

// Rebuild assembles the homepage context from the catalog tables and stores
// it in the cache. Used on cache miss and by the background regeneration job.
func (s *HomepageService) Rebuild(ctx context.Context) (*IndexPage, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	slides, err := s.repo.Slides(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load slides: %w", err)
	}

	promotions, err := s.repo.Promotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}

	indexCategories := make([]IndexCategory, 0, len(categories))
	for _, category := range categories {
		textSKUs, err := s.repo.Showcases(ctx, category.ID, DisplayTypeText)
		if err != nil {
			return nil, fmt.Errorf("failed to load text showcases for category %d: %w", category.ID, err)
		}

		imageSKUs, err := s.repo.Showcases(ctx, category.ID, DisplayTypeImage)
		if err != nil {
			return nil, fmt.Errorf("failed to load image showcases for category %d: %w", category.ID, err)
		}

		indexCategories = append(indexCategories, IndexCategory{
			Category:  category,
			TextSKUs:  textSKUs,
			ImageSKUs: imageSKUs,
		})
	}

	page := &IndexPage{
		Categories:  indexCategories,
		Slides:      slides,
		Promotions:  promotions,
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.cache.Set(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to store index cache: %w", err)
	}

	return page, nil
}

// Invalidate drops the cached homepage context
func (s *HomepageService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}
