// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/domain/cart"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/interfaces/http/middleware"
)

// Cart response codes. The storefront frontend branches on these rather
// than on HTTP status.
const (
	cartCodeOK                = 0
	cartCodeNotLoggedIn       = 1
	cartCodeMissingParam      = 2
	cartCodeBadFormat         = 3
	cartCodeSKUNotFound       = 4
	cartCodeInsufficientStock = 5
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(cart.NewRedisStore(redisClient), catalog.NewService(db, cfg)),
		config:      cfg,
	}
}

type cartLineRequest struct {
	SKUID string `json:"sku_id" form:"sku_id"`
	Count string `json:"count" form:"count"`
}

// parseLine validates the sku_id/count pair shared by add and update
func (h *CartHandler) parseLine(c *gin.Context) (skuID uint, count int, ok bool) {
	var req cartLineRequest
	if err := c.ShouldBind(&req); err != nil || req.SKUID == "" || req.Count == "" {
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeMissingParam,
			"errmsg": "Missing sku_id or count",
		})
		return 0, 0, false
	}

	id, err := strconv.ParseUint(req.SKUID, 10, 32)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeBadFormat,
			"errmsg": "Invalid sku_id",
		})
		return 0, 0, false
	}

	n, err := strconv.Atoi(req.Count)
	if err != nil || n <= 0 {
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeBadFormat,
			"errmsg": "Invalid count",
		})
		return 0, 0, false
	}

	return uint(id), n, true
}

// requireUser resolves the authenticated user or answers with code 1
func (h *CartHandler) requireUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeNotLoggedIn,
			"errmsg": "Please log in first",
		})
		return 0, false
	}
	return userID, true
}

// AddToCart handles POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	skuID, count, ok := h.parseLine(c)
	if !ok {
		return
	}

	cartCount, err := h.cartService.Add(c.Request.Context(), userID, skuID, count)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       cartCodeOK,
		"message":    "Added to cart",
		"cart_count": cartCount,
	})
}

// UpdateCartItem handles PUT /cart
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	skuID, count, ok := h.parseLine(c)
	if !ok {
		return
	}

	cartCount, err := h.cartService.Update(c.Request.Context(), userID, skuID, count)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       cartCodeOK,
		"message":    "Cart updated",
		"cart_count": cartCount,
	})
}

// RemoveFromCart handles DELETE /cart/:sku_id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	skuID, err := strconv.ParseUint(c.Param("sku_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeBadFormat,
			"errmsg": "Invalid sku_id",
		})
		return
	}

	if err := h.cartService.Delete(c.Request.Context(), userID, uint(skuID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove cart line",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    cartCodeOK,
		"message": "Removed from cart",
	})
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	cartPage, err := h.cartService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": cartCodeOK,
		"data": cartPage,
	})
}

// writeCartError maps service errors to cart response codes
func (h *CartHandler) writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrSKUNotFound):
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeSKUNotFound,
			"errmsg": "Product does not exist",
		})
	case errors.Is(err, cart.ErrInsufficientStock):
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeInsufficientStock,
			"errmsg": "Insufficient stock",
		})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusOK, gin.H{
			"code":   cartCodeBadFormat,
			"errmsg": "Invalid count",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Cart operation failed",
		})
	}
}
