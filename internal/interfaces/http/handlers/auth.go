// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/domain/history"
	"github.com/your-org/dailyfresh-backend/internal/domain/user"
	"github.com/your-org/dailyfresh-backend/internal/interfaces/http/middleware"
	"github.com/your-org/dailyfresh-backend/internal/jobs"
	"github.com/your-org/dailyfresh-backend/internal/pkg/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService    *user.Service
	addressService *user.AddressService
	tracker        *history.Tracker
	config         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuthHandler {
	queue := jobs.NewQueue(redisClient, cfg.Worker.QueueKey)
	jwtManager := auth.NewJWTManager(cfg)
	passwordManager := auth.NewPasswordManager(cfg.Security.BcryptCost)

	return &AuthHandler{
		userService:    user.NewService(db, cfg, jwtManager, passwordManager, queue),
		addressService: user.NewAddressService(db),
		tracker:        history.NewTracker(history.NewRedisStore(redisClient), catalog.NewService(db, cfg)),
		config:         cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Username already taken",
			})
			return
		}
		if created != nil {
			// User exists but the activation email could not be queued
			c.JSON(http.StatusCreated, gin.H{
				"message": "Registration successful, but the activation email could not be sent. Contact support.",
				"data":    created,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Check your email to activate your account.",
		"data":    created,
	})
}

// Activate handles GET /auth/activate/:token
func (h *AuthHandler) Activate(c *gin.Context) {
	token := c.Param("token")

	activated, err := h.userService.Activate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or expired activation link",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account activated successfully",
		"data":    activated,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid username or password",
			})
		case errors.Is(err, user.ErrAccountNotActive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is not activated. Check your email for the activation link.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Login failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    resp,
	})
}

// RefreshToken handles POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Refresh token required",
		})
		return
	}

	resp, err := h.userService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired refresh token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"data":    resp,
	})
}

// GetProfile handles GET /auth/profile. Besides the account itself the
// response carries the user's latest shipping address and recently
// viewed products, both best-effort.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load profile",
		})
		return
	}

	address, err := h.addressService.Latest(c.Request.Context(), userID)
	if err != nil {
		address = nil
	}

	recent, err := h.tracker.RecentSKUs(c.Request.Context(), userID)
	if err != nil {
		recent = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user":            profile,
			"address":         address,
			"recently_viewed": recent,
		},
	})
}
