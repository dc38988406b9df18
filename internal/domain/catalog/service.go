// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"gorm.io/gorm"
)

// Sentinel errors callers branch on
var (
	ErrSKUNotFound      = errors.New("sku not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Number of SKUs per category listing page
const listPageSize = 8

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SKUDetail is the product detail page context
type SKUDetail struct {
	SKU         SKU        `json:"sku"`
	Categories  []Category `json:"categories"`
	SameSPUSKUs []SKU      `json:"same_spu_skus"`
	NewArrivals []SKU      `json:"new_arrivals"`
}

// ListRequest represents category listing query parameters
type ListRequest struct {
	CategoryID uint
	Page       int
	Sort       string // "default", "price", "hot"
}

// ListResponse represents a paginated category listing
type ListResponse struct {
	Category    Category   `json:"category"`
	Categories  []Category `json:"categories"`
	SKUs        []SKU      `json:"skus"`
	NewArrivals []SKU      `json:"new_arrivals"`
	Sort        string     `json:"sort"`
	Pagination  Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetSKU returns a single on-sale SKU by id
func (s *Service) GetSKU(skuID uint) (*SKU, error) {
	var sku SKU
	result := s.db.Where("id = ? AND is_on_sale = ?", skuID, true).First(&sku)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSKUNotFound
		}
		return nil, fmt.Errorf("failed to load sku: %w", result.Error)
	}
	return &sku, nil
}

// GetSKUs resolves a batch of SKU ids, preserving the input order.
// Unknown ids are skipped.
func (s *Service) GetSKUs(skuIDs []uint) ([]SKU, error) {
	if len(skuIDs) == 0 {
		return []SKU{}, nil
	}

	var skus []SKU
	if err := s.db.Where("id IN ?", skuIDs).Find(&skus).Error; err != nil {
		return nil, fmt.Errorf("failed to load skus: %w", err)
	}

	byID := make(map[uint]SKU, len(skus))
	for _, sku := range skus {
		byID[sku.ID] = sku
	}

	ordered := make([]SKU, 0, len(skuIDs))
	for _, id := range skuIDs {
		if sku, ok := byID[id]; ok {
			ordered = append(ordered, sku)
		}
	}
	return ordered, nil
}

// GetSKUDetail assembles the product detail page context
func (s *Service) GetSKUDetail(skuID uint) (*SKUDetail, error) {
	sku, err := s.GetSKU(skuID)
	if err != nil {
		return nil, err
	}

	var categories []Category
	if err := s.db.Order("sort_order").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	// Other pack sizes of the same item
	var sameSPU []SKU
	if err := s.db.Where("spu_id = ? AND id <> ? AND is_on_sale = ?", sku.SPUID, sku.ID, true).
		Find(&sameSPU).Error; err != nil {
		return nil, fmt.Errorf("failed to load same-spu skus: %w", err)
	}

	// Two newest SKUs in the same category
	var newArrivals []SKU
	if err := s.db.Where("category_id = ? AND is_on_sale = ?", sku.CategoryID, true).
		Order("created_at DESC").Limit(2).Find(&newArrivals).Error; err != nil {
		return nil, fmt.Errorf("failed to load new arrivals: %w", err)
	}

	return &SKUDetail{
		SKU:         *sku,
		Categories:  categories,
		SameSPUSKUs: sameSPU,
		NewArrivals: newArrivals,
	}, nil
}

// ListByCategory returns one page of a category's SKUs
func (s *Service) ListByCategory(req *ListRequest) (*ListResponse, error) {
	var category Category
	result := s.db.Where("id = ?", req.CategoryID).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", result.Error)
	}

	var categories []Category
	if err := s.db.Order("sort_order").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&SKU{}).Where("category_id = ? AND is_on_sale = ?", req.CategoryID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count skus: %w", err)
	}

	sort := req.Sort
	switch sort {
	case "price":
		query = query.Order("price ASC")
	case "hot":
		query = query.Order("sales DESC")
	default:
		sort = "default"
		query = query.Order("id DESC")
	}

	var skus []SKU
	offset := (page - 1) * listPageSize
	if err := query.Offset(offset).Limit(listPageSize).Find(&skus).Error; err != nil {
		return nil, fmt.Errorf("failed to load skus: %w", err)
	}

	var newArrivals []SKU
	if err := s.db.Where("category_id = ? AND is_on_sale = ?", req.CategoryID, true).
		Order("created_at DESC").Limit(2).Find(&newArrivals).Error; err != nil {
		return nil, fmt.Errorf("failed to load new arrivals: %w", err)
	}

	totalPages := int((total + listPageSize - 1) / listPageSize)

	return &ListResponse{
		Category:    category,
		Categories:  categories,
		SKUs:        skus,
		NewArrivals: newArrivals,
		Sort:        sort,
		Pagination: Pagination{
			Page:       page,
			Limit:      listPageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}
