// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/interfaces/http/handlers"
	"github.com/your-org/dailyfresh-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupCatalogRoutes(rg, db, redisClient, cfg)
	SetupCartRoutes(rg, db, redisClient, cfg)
	SetupUserRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, redisClient, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.GET("/activate/:token", authHandler.Activate)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupCatalogRoutes sets up storefront browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, redisClient, cfg)

	// Browsing works anonymously; a logged-in user additionally gets
	// their cart count and browsing history recorded
	browse := rg.Group("")
	browse.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		browse.GET("/index", catalogHandler.Index)
		browse.GET("/goods/:id", catalogHandler.GetSKUDetail)
		browse.GET("/categories/:id/goods", catalogHandler.ListByCategory)
	}

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/history", catalogHandler.GetHistory)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	// Cart endpoints answer code 1 for anonymous users instead of 401,
	// so auth is optional at the middleware level
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("", cartHandler.AddToCart)
		cart.PUT("", cartHandler.UpdateCartItem)
		cart.DELETE("/:sku_id", cartHandler.RemoveFromCart)
	}
}

// SetupUserRoutes sets up user account routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	addressHandler := handlers.NewAddressHandler(db, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/addresses", addressHandler.ListAddresses)
		users.POST("/addresses", addressHandler.CreateAddress)
		users.PUT("/addresses/:id/default", addressHandler.SetDefaultAddress)
	}
}

// SetupOrderRoutes sets up order related routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("", orderHandler.CommitOrder)
		orders.GET("/:order_id", orderHandler.GetOrder)
		orders.POST("/:order_id/payment", orderHandler.PayOrder)
		orders.GET("/:order_id/receipt", orderHandler.GetReceipt)
	}
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	adminHandler := handlers.NewAdminHandler(db, redisClient, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		goods := admin.Group("/goods")
		{
			goods.POST("", adminHandler.CreateSKU)
			goods.PUT("/:id", adminHandler.UpdateSKU)
			goods.DELETE("/:id", adminHandler.DeleteSKU)
		}

		admin.POST("/homepage/rebuild", adminHandler.RebuildHomepage)
	}
}
