package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type indexRepoMock struct{ mock.Mock }

func (m *indexRepoMock) Categories(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]Category)
	return categories, args.Error(1)
}

func (m *indexRepoMock) Slides(ctx context.Context) ([]SlideItem, error) {
	args := m.Called(ctx)
	slides, _ := args.Get(0).([]SlideItem)
	return slides, args.Error(1)
}

func (m *indexRepoMock) Promotions(ctx context.Context) ([]Promotion, error) {
	args := m.Called(ctx)
	promotions, _ := args.Get(0).([]Promotion)
	return promotions, args.Error(1)
}

func (m *indexRepoMock) Showcases(ctx context.Context, categoryID uint, displayType int) ([]CategoryShowcase, error) {
	args := m.Called(ctx, categoryID, displayType)
	showcases, _ := args.Get(0).([]CategoryShowcase)
	return showcases, args.Error(1)
}

type indexCacheMock struct{ mock.Mock }

func (m *indexCacheMock) Get(ctx context.Context) (*IndexPage, error) {
	args := m.Called(ctx)
	page, _ := args.Get(0).(*IndexPage)
	return page, args.Error(1)
}

func (m *indexCacheMock) Set(ctx context.Context, page *IndexPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *indexCacheMock) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHomepageService_CacheHitSkipsRepository(t *testing.T) {
	ctx := context.Background()
	repo := new(indexRepoMock)
	cache := new(indexCacheMock)
	svc := NewHomepageService(repo, cache)

	cached := &IndexPage{Slides: []SlideItem{{ID: 1}}}
	cache.On("Get", mock.Anything).Return(cached, nil)

	page, hit, err := svc.GetIndexPage(ctx)
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, cached, page)

	repo.AssertNotCalled(t, "Categories", mock.Anything)
	repo.AssertNotCalled(t, "Slides", mock.Anything)
}

func TestHomepageService_CacheMissAssemblesAndStores(t *testing.T) {
	ctx := context.Background()
	repo := new(indexRepoMock)
	cache := new(indexCacheMock)
	svc := NewHomepageService(repo, cache)

	cache.On("Get", mock.Anything).Return(nil, ErrCacheMiss)
	repo.On("Categories", mock.Anything).Return([]Category{{ID: 1, Name: "Fresh Fruit"}}, nil)
	repo.On("Slides", mock.Anything).Return([]SlideItem{{ID: 1}}, nil)
	repo.On("Promotions", mock.Anything).Return([]Promotion{{ID: 1}}, nil)
	repo.On("Showcases", mock.Anything, uint(1), DisplayTypeText).Return([]CategoryShowcase{{ID: 1}}, nil)
	repo.On("Showcases", mock.Anything, uint(1), DisplayTypeImage).Return([]CategoryShowcase{{ID: 2}}, nil)
	cache.On("Set", mock.Anything, mock.AnythingOfType("*catalog.IndexPage")).Return(nil)

	page, hit, err := svc.GetIndexPage(ctx)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, page.Categories, 1)
	assert.Len(t, page.Categories[0].TextSKUs, 1)
	assert.Len(t, page.Categories[0].ImageSKUs, 1)
	assert.False(t, page.GeneratedAt.IsZero())

	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestHomepageService_CacheErrorIsPropagated(t *testing.T) {
	ctx := context.Background()
	repo := new(indexRepoMock)
	cache := new(indexCacheMock)
	svc := NewHomepageService(repo, cache)

	cache.On("Get", mock.Anything).Return(nil, errors.New("connection refused"))

	_, _, err := svc.GetIndexPage(ctx)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Categories", mock.Anything)
}

func TestHomepageService_Invalidate(t *testing.T) {
	cache := new(indexCacheMock)
	svc := NewHomepageService(new(indexRepoMock), cache)

	cache.On("Invalidate", mock.Anything).Return(nil)

	assert.NoError(t, svc.Invalidate(context.Background()))
	cache.AssertExpectations(t)
}
