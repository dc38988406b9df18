// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"sort"

	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
)

// Sentinel errors callers branch on
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Catalog is the slice of the catalog service the cart needs
type Catalog interface {
	GetSKU(skuID uint) (*catalog.SKU, error)
	GetSKUs(skuIDs []uint) ([]catalog.SKU, error)
}

// Service handles cart business logic
type Service struct {
	store   Store
	catalog Catalog
}

// NewService creates a new cart service
func NewService(store Store, cat Catalog) *Service {
	return &Service{
		store:   store,
		catalog: cat,
	}
}

// Line is one cart line with its SKU resolved
type Line struct {
	SKU      catalog.SKU `json:"sku"`
	Quantity int         `json:"quantity"`
	Amount   int64       `json:"amount"` // Price × Quantity, in cents
}

// Cart is the full cart page context
type Cart struct {
	Lines       []Line `json:"lines"`
	TotalCount  int    `json:"total_count"`
	TotalAmount int64  `json:"total_amount"`
}

// Add accumulates count onto the stored quantity for one SKU.
// The resulting quantity is rejected if it exceeds the SKU's current stock;
// the stored value is left unchanged in that case. Returns the total item
// count across all SKUs after the write.
//
// The stock check and the hash write are not atomic: a concurrent add can
// pass the check before this write lands. Last writer wins.
func (s *Service) Add(ctx context.Context, userID, skuID uint, count int) (int, error) {
	if count <= 0 {
		return 0, ErrInvalidQuantity
	}

	sku, err := s.catalog.GetSKU(skuID)
	if err != nil {
		return 0, err
	}

	existing, err := s.store.Quantity(ctx, userID, skuID)
	if err != nil {
		return 0, err
	}

	total := existing + count
	if total > sku.Stock {
		return 0, ErrInsufficientStock
	}

	if err := s.store.SetQuantity(ctx, userID, skuID, total); err != nil {
		return 0, err
	}

	return s.store.TotalCount(ctx, userID)
}

// Update overwrites the stored quantity for one SKU after a stock check.
// Unlike Add it does not accumulate with the prior value.
func (s *Service) Update(ctx context.Context, userID, skuID uint, count int) (int, error) {
	if count <= 0 {
		return 0, ErrInvalidQuantity
	}

	sku, err := s.catalog.GetSKU(skuID)
	if err != nil {
		return 0, err
	}

	if count > sku.Stock {
		return 0, ErrInsufficientStock
	}

	if err := s.store.SetQuantity(ctx, userID, skuID, count); err != nil {
		return 0, err
	}

	return s.store.TotalCount(ctx, userID)
}

// Delete removes one SKU's line. Deleting an absent line is a success.
func (s *Service) Delete(ctx context.Context, userID, skuID uint) error {
	return s.store.Remove(ctx, userID, skuID)
}

// List resolves every cart line against the catalog and computes
// per-line and aggregate amounts
func (s *Service) List(ctx context.Context, userID uint) (*Cart, error) {
	stored, err := s.store.All(ctx, userID)
	if err != nil {
		return nil, err
	}

	skuIDs := make([]uint, 0, len(stored))
	for skuID := range stored {
		skuIDs = append(skuIDs, skuID)
	}
	sort.Slice(skuIDs, func(i, j int) bool { return skuIDs[i] < skuIDs[j] })

	skus, err := s.catalog.GetSKUs(skuIDs)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Lines: make([]Line, 0, len(skus))}
	for _, sku := range skus {
		quantity := stored[sku.ID]
		amount := sku.Price * int64(quantity)

		cart.Lines = append(cart.Lines, Line{
			SKU:      sku,
			Quantity: quantity,
			Amount:   amount,
		})
		cart.TotalCount += quantity
		cart.TotalAmount += amount
	}

	return cart, nil
}

// Count returns the total item count across all SKUs for a user.
// Used by the homepage to merge the per-request cart count into the
// otherwise cached context.
func (s *Service) Count(ctx context.Context, userID uint) (int, error) {
	return s.store.TotalCount(ctx, userID)
}
