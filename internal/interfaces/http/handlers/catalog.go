// internal/interfaces/http/handlers/catalog.go
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
	"github.com/your-org/dailyfresh-backend/internal/domain/history"
	"github.com/your-org/dailyfresh-backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles storefront browsing endpoints
type CatalogHandler struct {
	catalogService  *catalog.Service
	homepageService *catalog.HomepageService
	cartService     *cart.Service
	tracker         *history.Tracker
	config          *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CatalogHandler {
	catalogService := catalog.NewService(db, cfg)
	cartStore := cart.NewRedisStore(redisClient)

	return &CatalogHandler{
		catalogService: catalogService,
		homepageService: catalog.NewHomepageService(
			catalog.NewIndexRepository(db),
			catalog.NewIndexCache(redisClient, cfg),
		),
		cartService: cart.NewService(cartStore, catalogService),
		tracker:     history.NewTracker(history.NewRedisStore(redisClient), catalogService),
		config:      cfg,
	}
}

// Index handles GET /index. The page context is served from cache when
// possible; the cart count is per-user and merged in after.
func (h *CatalogHandler) Index(c *gin.Context) {
	page, cached, err := h.homepageService.GetIndexPage(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load homepage",
		})
		return
	}

	cartCount := 0
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if count, err := h.cartService.Count(c.Request.Context(), userID); err == nil {
			cartCount = count
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       page,
		"cart_count": cartCount,
		"cached":     cached,
	})
}

// GetSKUDetail handles GET /goods/:id. Viewing a product records it in
// the user's browsing history.
func (h *CatalogHandler) GetSKUDetail(c *gin.Context) {
	skuID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	detail, err := h.catalogService.GetSKUDetail(uint(skuID))
	if err != nil {
		if errors.Is(err, catalog.ErrSKUNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load product",
		})
		return
	}

	cartCount := 0
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		// History is best-effort, the page still renders if it fails
		_ = h.tracker.RecordView(c.Request.Context(), userID, uint(skuID))
		if count, err := h.cartService.Count(c.Request.Context(), userID); err == nil {
			cartCount = count
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       detail,
		"cart_count": cartCount,
	})
}

// ListByCategory handles GET /categories/:id/goods
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category ID",
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	sort := c.DefaultQuery("sort", "default")

	resp, err := h.catalogService.ListByCategory(&catalog.ListRequest{
		CategoryID: uint(categoryID),
		Page:       page,
		Sort:       sort,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Category not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load category",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// GetHistory handles GET /users/history
func (h *CatalogHandler) GetHistory(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	skus, err := h.tracker.RecentSKUs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load browsing history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": skus,
	})
}
