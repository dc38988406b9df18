// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/pkg/auth"
)

// Sentinel errors callers branch on
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountNotActive   = errors.New("account is not activated")
	ErrUserNotFound       = errors.New("user not found")
)

// Notifier is the slice of the job queue the user service needs
type Notifier interface {
	EnqueueActivationEmail(ctx context.Context, userID uint, username, email, token string) error
}

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
	notifier        Notifier
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, jwtManager *auth.JWTManager, passwordManager *auth.PasswordManager, notifier Notifier) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      jwtManager,
		passwordManager: passwordManager,
		notifier:        notifier,
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates an inactive user account and queues the activation email.
// The account cannot log in until the emailed activation link is followed.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if err := auth.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("invalid email address")
	}
	if err := s.passwordManager.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		IsActive: false,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.GenerateActivationToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate activation token: %w", err)
	}

	if err := s.notifier.EnqueueActivationEmail(ctx, user.ID, user.Username, user.Email, token); err != nil {
		// Registration stands even if the mail could not be queued
		return user, fmt.Errorf("failed to queue activation email: %w", err)
	}

	return user, nil
}

// Activate flips a user to active from a valid activation token.
// Activating an already-active account is a no-op success.
func (s *Service) Activate(ctx context.Context, token string) (*User, error) {
	userID, err := s.jwtManager.ValidateActivationToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid activation token: %w", err)
	}

	var user User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.IsActive {
		return &user, nil
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("is_active", true).Error; err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	user.IsActive = true

	return &user, nil
}

// Login authenticates an active user and issues token pairs.
// RememberMe stretches the refresh token lifetime.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var user User
	if err := s.db.WithContext(ctx).
		Where("username = ?", req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.passwordManager.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountNotActive
	}

	refreshExpiry := s.config.JWT.RefreshTokenExpiry
	if req.RememberMe {
		refreshExpiry = s.config.JWT.RememberMeExpiry
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login time: %w", err)
	}
	user.LastLoginAt = &now

	return &AuthResponse{
		User:         &user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var user User
	if err := s.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountNotActive
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username, s.config.JWT.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         &user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile returns a user by id
func (s *Service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
