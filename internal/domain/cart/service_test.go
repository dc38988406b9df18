package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
)

type storeMock struct{ mock.Mock }

func (m *storeMock) Quantity(ctx context.Context, userID, skuID uint) (int, error) {
	args := m.Called(ctx, userID, skuID)
	return args.Int(0), args.Error(1)
}

func (m *storeMock) SetQuantity(ctx context.Context, userID, skuID uint, quantity int) error {
	args := m.Called(ctx, userID, skuID, quantity)
	return args.Error(0)
}

func (m *storeMock) Remove(ctx context.Context, userID uint, skuIDs ...uint) error {
	args := m.Called(ctx, userID, skuIDs)
	return args.Error(0)
}

func (m *storeMock) All(ctx context.Context, userID uint) (map[uint]int, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).(map[uint]int)
	return lines, args.Error(1)
}

func (m *storeMock) TotalCount(ctx context.Context, userID uint) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type catalogMock struct{ mock.Mock }

func (m *catalogMock) GetSKU(skuID uint) (*catalog.SKU, error) {
	args := m.Called(skuID)
	sku, _ := args.Get(0).(*catalog.SKU)
	return sku, args.Error(1)
}

func (m *catalogMock) GetSKUs(skuIDs []uint) ([]catalog.SKU, error) {
	args := m.Called(skuIDs)
	skus, _ := args.Get(0).([]catalog.SKU)
	return skus, args.Error(1)
}

func TestService_Add_AccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	cat := new(catalogMock)
	svc := NewService(store, cat)

	cat.On("GetSKU", uint(7)).Return(&catalog.SKU{ID: 7, Stock: 10}, nil)
	store.On("Quantity", mock.Anything, uint(1), uint(7)).Return(4, nil)
	store.On("SetQuantity", mock.Anything, uint(1), uint(7), 6).Return(nil)
	store.On("TotalCount", mock.Anything, uint(1)).Return(6, nil)

	count, err := svc.Add(ctx, 1, 7, 2)
	assert.NoError(t, err)
	assert.Equal(t, 6, count)
	store.AssertExpectations(t)
}

func TestService_Add_RejectsWhenTotalExceedsStock(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	cat := new(catalogMock)
	svc := NewService(store, cat)

	// 4 already stored, adding 8 would need 12 against a stock of 10
	cat.On("GetSKU", uint(7)).Return(&catalog.SKU{ID: 7, Stock: 10}, nil)
	store.On("Quantity", mock.Anything, uint(1), uint(7)).Return(4, nil)

	_, err := svc.Add(ctx, 1, 7, 8)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The stored quantity must be left unchanged
	store.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Add_UnknownSKU(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	cat := new(catalogMock)
	svc := NewService(store, cat)

	cat.On("GetSKU", uint(99)).Return(nil, catalog.ErrSKUNotFound)

	_, err := svc.Add(ctx, 1, 99, 1)
	assert.ErrorIs(t, err, catalog.ErrSKUNotFound)
}

func TestService_Add_InvalidQuantity(t *testing.T) {
	svc := NewService(new(storeMock), new(catalogMock))

	_, err := svc.Add(context.Background(), 1, 7, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Add(context.Background(), 1, 7, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestService_Update_OverwritesWithoutAccumulating(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	cat := new(catalogMock)
	svc := NewService(store, cat)

	cat.On("GetSKU", uint(7)).Return(&catalog.SKU{ID: 7, Stock: 10}, nil)
	store.On("SetQuantity", mock.Anything, uint(1), uint(7), 3).Return(nil)
	store.On("TotalCount", mock.Anything, uint(1)).Return(3, nil)

	count, err := svc.Update(ctx, 1, 7, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	// Update never reads the prior quantity
	store.AssertNotCalled(t, "Quantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_RejectsOverStock(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	cat := new(catalogMock)
	svc := NewService(store, cat)

	cat.On("GetSKU", uint(7)).Return(&catalog.SKU{ID: 7, Stock: 10}, nil)

	_, err := svc.Update(ctx, 1, 7, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	store.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete_AbsentLineIsSuccess(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	svc := NewService(store, new(catalogMock))

	store.On("Remove", mock.Anything, uint(1), []uint{42}).Return(nil)

	err := svc.Delete(ctx, 1, 42)
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestService_List_ComputesAmounts(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	cat := new(catalogMock)
	svc := NewService(store, cat)

	store.On("All", mock.Anything, uint(1)).Return(map[uint]int{3: 2, 5: 1}, nil)
	cat.On("GetSKUs", []uint{3, 5}).Return([]catalog.SKU{
		{ID: 3, Name: "Strawberry 500g", Price: 1980},
		{ID: 5, Name: "Milk 1L", Price: 650},
	}, nil)

	cartPage, err := svc.List(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, cartPage.Lines, 2)
	assert.Equal(t, 3, cartPage.TotalCount)
	assert.Equal(t, int64(1980*2+650), cartPage.TotalAmount)
	assert.Equal(t, int64(3960), cartPage.Lines[0].Amount)
}

func TestService_Count(t *testing.T) {
	store := new(storeMock)
	svc := NewService(store, new(catalogMock))

	store.On("TotalCount", mock.Anything, uint(9)).Return(5, nil)

	count, err := svc.Count(context.Background(), 9)
	assert.NoError(t, err)
	assert.Equal(t, 5, count)
}
