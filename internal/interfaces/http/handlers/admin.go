// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/jobs"
)

// AdminHandler handles admin catalog management endpoints
type AdminHandler struct {
	db              *gorm.DB
	homepageService *catalog.HomepageService
	queue           *jobs.Queue
	config          *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		db: db,
		homepageService: catalog.NewHomepageService(
			catalog.NewIndexRepository(db),
			catalog.NewIndexCache(redisClient, cfg),
		),
		queue:  jobs.NewQueue(redisClient, cfg.Worker.QueueKey),
		config: cfg,
	}
}

// CreateSKURequest represents a new product SKU
type CreateSKURequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	SPUID      uint   `json:"spu_id" binding:"required"`
	Name       string `json:"name" binding:"required,max=50"`
	Caption    string `json:"caption" binding:"max=256"`
	Unit       string `json:"unit" binding:"required,max=20"`
	Price      int64  `json:"price" binding:"required,min=1"`
	Stock      int    `json:"stock" binding:"min=0"`
	Image      string `json:"image"`
	IsOnSale   *bool  `json:"is_on_sale"`
}

// UpdateSKURequest represents a partial SKU update
type UpdateSKURequest struct {
	Name     *string `json:"name"`
	Caption  *string `json:"caption"`
	Unit     *string `json:"unit"`
	Price    *int64  `json:"price"`
	Stock    *int    `json:"stock"`
	Image    *string `json:"image"`
	IsOnSale *bool   `json:"is_on_sale"`
}

// CreateSKU handles POST /admin/goods
func (h *AdminHandler) CreateSKU(c *gin.Context) {
	var req CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sku := &catalog.SKU{
		CategoryID: req.CategoryID,
		SPUID:      req.SPUID,
		Name:       req.Name,
		Caption:    req.Caption,
		Unit:       req.Unit,
		Price:      req.Price,
		Stock:      req.Stock,
		Image:      req.Image,
		IsOnSale:   true,
	}
	if req.IsOnSale != nil {
		sku.IsOnSale = *req.IsOnSale
	}

	if err := h.db.WithContext(c.Request.Context()).Create(sku).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	h.refreshHomepage(c)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"data":    sku,
	})
}

// UpdateSKU handles PUT /admin/goods/:id
func (h *AdminHandler) UpdateSKU(c *gin.Context) {
	skuID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var sku catalog.SKU
	if err := h.db.WithContext(c.Request.Context()).First(&sku, uint(skuID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
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

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Caption != nil {
		updates["caption"] = *req.Caption
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.IsOnSale != nil {
		updates["is_on_sale"] = *req.IsOnSale
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).Model(&sku).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update product",
			})
			return
		}
	}

	h.refreshHomepage(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
		"data":    sku,
	})
}

// DeleteSKU handles DELETE /admin/goods/:id (soft delete)
func (h *AdminHandler) DeleteSKU(c *gin.Context) {
	skuID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Delete(&catalog.SKU{}, uint(skuID))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	h.refreshHomepage(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// RebuildHomepage handles POST /admin/homepage/rebuild
func (h *AdminHandler) RebuildHomepage(c *gin.Context) {
	if err := h.queue.EnqueueRegenIndexCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to queue rebuild",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Homepage rebuild queued",
	})
}

// refreshHomepage drops the cached homepage and queues a background
// rebuild so a catalog change shows up on the next request
func (h *AdminHandler) refreshHomepage(c *gin.Context) {
	_ = h.homepageService.Invalidate(c.Request.Context())
	_ = h.queue.EnqueueRegenIndexCache(c.Request.Context())
}
