// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/domain/cart"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/domain/order"
	"github.com/your-org/dailyfresh-backend/internal/domain/user"
	"github.com/your-org/dailyfresh-backend/internal/interfaces/http/middleware"
	"github.com/your-org/dailyfresh-backend/internal/jobs"
	"github.com/your-org/dailyfresh-backend/internal/pkg/pdf"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService   *order.Service
	catalogService *catalog.Service
	addressService *user.AddressService
	pdfService     *pdf.Service
	config         *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *OrderHandler {
	queue := jobs.NewQueue(redisClient, cfg.Worker.QueueKey)

	return &OrderHandler{
		orderService:   order.NewService(db, cart.NewRedisStore(redisClient), queue),
		catalogService: catalog.NewService(db, cfg),
		addressService: user.NewAddressService(db),
		pdfService:     pdf.NewService(cfg),
		config:         cfg,
	}
}

// CommitOrder handles POST /orders
func (h *OrderHandler) CommitOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req order.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	info, err := h.orderService.Commit(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyOrder),
			errors.Is(err, order.ErrInvalidPayMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, order.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Address not found",
			})
		case errors.Is(err, catalog.ErrSKUNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Product does not exist",
			})
		case errors.Is(err, order.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock",
			})
		default:
			if info != nil {
				// Order exists but a post-commit step failed
				c.JSON(http.StatusCreated, gin.H{
					"message": "Order placed",
					"data":    info,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    info,
	})
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := h.orderService.ListUserOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// GetOrder handles GET /orders/:order_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	info, err := h.orderService.GetOrder(c.Request.Context(), userID, c.Param("order_id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": info,
	})
}

// PayOrder handles POST /orders/:order_id/payment. It stands in for the
// payment provider callback and marks the order as paid.
func (h *OrderHandler) PayOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		TradeNo string `json:"trade_no" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "trade_no required",
		})
		return
	}

	info, err := h.orderService.PaymentCallback(c.Request.Context(), userID, c.Param("order_id"), req.TradeNo)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, order.ErrOrderNotPayable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order is not awaiting payment",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to record payment",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment recorded",
		"data":    info,
	})
}

// GetReceipt handles GET /orders/:order_id/receipt and streams a PDF
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	info, err := h.orderService.GetOrder(c.Request.Context(), userID, c.Param("order_id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order",
		})
		return
	}

	addr, err := h.addressService.Get(c.Request.Context(), userID, info.AddressID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order address",
		})
		return
	}

	data := pdf.ReceiptData{
		OrderID:       info.OrderID,
		OrderDate:     info.CreatedAt.Format("January 2, 2006"),
		Status:        info.StatusName(),
		PayMethod:     info.PayMethodName(),
		ReceiverName:  addr.ReceiverName,
		Mobile:        addr.Mobile,
		AddressDetail: addr.Detail,
		GoodsAmount:   formatCents(info.TotalAmount),
		TransCost:     formatCents(info.TransCost),
		GrandTotal:    formatCents(info.GrandTotal()),
	}

	skuIDs := make([]uint, 0, len(info.Goods))
	for _, line := range info.Goods {
		skuIDs = append(skuIDs, line.SKUID)
	}
	skus, err := h.catalogService.GetSKUs(skuIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order lines",
		})
		return
	}
	names := make(map[uint]catalog.SKU, len(skus))
	for _, sku := range skus {
		names[sku.ID] = sku
	}

	for _, line := range info.Goods {
		item := pdf.ReceiptItem{
			Quantity: line.Count,
			Price:    formatCents(line.Price),
			Total:    formatCents(line.Price * int64(line.Count)),
		}
		if sku, ok := names[line.SKUID]; ok {
			item.Name = sku.Name
			item.Unit = sku.Unit
		} else {
			item.Name = fmt.Sprintf("SKU %d", line.SKUID)
		}
		data.Items = append(data.Items, item)
	}

	buf, err := h.pdfService.GenerateReceipt(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", info.OrderID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// formatCents renders a cent amount as a currency string
func formatCents(cents int64) string {
	return fmt.Sprintf("¥%.2f", float64(cents)/100)
}
