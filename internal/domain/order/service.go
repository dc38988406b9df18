// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/domain/cart"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/domain/user"
)

// Sentinel errors callers branch on
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("no cart lines selected")
	ErrInvalidPayMethod  = errors.New("invalid payment method")
	ErrInvalidAddress    = errors.New("address not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotPayable   = errors.New("order is not awaiting payment")
)

// Flat freight charged per order, in cents
const transCost = 1000

const defaultPageSize = 10

// Notifier is the slice of the job queue the order service needs
type Notifier interface {
	EnqueueOrderConfirmation(ctx context.Context, userID uint, username, email, orderID string) error
}

// Service handles order business logic
type Service struct {
	db        *gorm.DB
	cartStore cart.Store
	notifier  Notifier
}

// NewService creates a new order service
func NewService(db *gorm.DB, cartStore cart.Store, notifier Notifier) *Service {
	return &Service{
		db:        db,
		cartStore: cartStore,
		notifier:  notifier,
	}
}

// CommitRequest represents an order placement
type CommitRequest struct {
	AddressID uint   `json:"address_id" binding:"required"`
	PayMethod int    `json:"pay_method" binding:"required"`
	SKUIDs    []uint `json:"sku_ids" binding:"required"`
}

// Pagination represents paginated list metadata
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListResponse is one page of a user's orders
type ListResponse struct {
	Orders     []OrderInfo `json:"orders"`
	Pagination Pagination  `json:"pagination"`
}

// newOrderID builds the opaque order id from the commit time and the
// user id, e.g. "202608311504051"
func newOrderID(userID uint) string {
	return fmt.Sprintf("%s%d", time.Now().Format("20060102150405"), userID)
}

// Commit places an order for the selected cart lines inside one
// transaction: stock is decremented per line with a conditional update,
// so a concurrent commit that drains stock first rolls this one back.
// On success the purchased lines are removed from the cart and a
// confirmation email is queued.
func (s *Service) Commit(ctx context.Context, userID uint, req *CommitRequest) (*OrderInfo, error) {
	if len(req.SKUIDs) == 0 {
		return nil, ErrEmptyOrder
	}
	if !ValidPayMethod(req.PayMethod) {
		return nil, ErrInvalidPayMethod
	}

	var addr user.Address
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", req.AddressID, userID).
		First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAddress
		}
		return nil, err
	}

	info := &OrderInfo{
		OrderID:   newOrderID(userID),
		UserID:    userID,
		AddressID: addr.ID,
		TransCost: transCost,
		PayMethod: req.PayMethod,
		Status:    StatusUnpaid,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(info).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, skuID := range req.SKUIDs {
			quantity, err := s.cartStore.Quantity(ctx, userID, skuID)
			if err != nil {
				return err
			}
			if quantity <= 0 {
				return fmt.Errorf("sku %d is not in the cart", skuID)
			}

			var sku catalog.SKU
			if err := tx.Where("is_on_sale = ?", true).First(&sku, skuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return catalog.ErrSKUNotFound
				}
				return err
			}

			// Conditional decrement: zero rows affected means another
			// order drained the stock between read and write
			result := tx.Model(&catalog.SKU{}).
				Where("id = ? AND stock >= ?", skuID, quantity).
				Updates(map[string]interface{}{
					"stock": gorm.Expr("stock - ?", quantity),
					"sales": gorm.Expr("sales + ?", quantity),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			line := &OrderGoods{
				OrderID: info.OrderID,
				SKUID:   skuID,
				Count:   quantity,
				Price:   sku.Price,
			}
			if err := tx.Create(line).Error; err != nil {
				return fmt.Errorf("failed to create order line: %w", err)
			}

			info.TotalCount += quantity
			info.TotalAmount += sku.Price * int64(quantity)
		}

		return tx.Model(info).Updates(map[string]interface{}{
			"total_count":  info.TotalCount,
			"total_amount": info.TotalAmount,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	// The order stands even if cart cleanup or the email fails
	if err := s.cartStore.Remove(ctx, userID, req.SKUIDs...); err != nil {
		return info, fmt.Errorf("order placed but cart cleanup failed: %w", err)
	}

	var u user.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err == nil {
		if err := s.notifier.EnqueueOrderConfirmation(ctx, u.ID, u.Username, u.Email, info.OrderID); err != nil {
			return info, fmt.Errorf("order placed but confirmation email failed to queue: %w", err)
		}
	}

	return info, nil
}

// ListUserOrders returns one page of a user's orders, newest first,
// with their lines preloaded
func (s *Service) ListUserOrders(ctx context.Context, userID uint, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&OrderInfo{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []OrderInfo
	if err := s.db.WithContext(ctx).
		Preload("Goods").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetOrder returns one of the user's orders with its lines
func (s *Service) GetOrder(ctx context.Context, userID uint, orderID string) (*OrderInfo, error) {
	var info OrderInfo
	if err := s.db.WithContext(ctx).
		Preload("Goods").
		Where("order_id = ? AND user_id = ?", orderID, userID).
		First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &info, nil
}

// PaymentCallback marks an unpaid order as paid and records the
// external trade reference
func (s *Service) PaymentCallback(ctx context.Context, userID uint, orderID, tradeNo string) (*OrderInfo, error) {
	info, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if info.Status != StatusUnpaid {
		return nil, ErrOrderNotPayable
	}

	if err := s.db.WithContext(ctx).Model(info).Updates(map[string]interface{}{
		"status":   StatusPaid,
		"trade_no": tradeNo,
	}).Error; err != nil {
		return nil, err
	}
	info.Status = StatusPaid
	info.TradeNo = tradeNo

	return info, nil
}
