package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/dailyfresh-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "dailyfresh-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-for-jwt-tests",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
			RememberMeExpiry:   14 * 24 * time.Hour,
			ActivationExpiry:   24 * time.Hour,
		},
	}
}

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(42, "alice", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestJWTManager_ActivationTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateActivationToken(7)
	assert.NoError(t, err)

	userID, err := manager.ValidateActivationToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestJWTManager_TokenTypeIsEnforced(t *testing.T) {
	manager := NewJWTManager(testConfig())

	activation, err := manager.GenerateActivationToken(7)
	assert.NoError(t, err)

	// An activation token is not an access token and vice versa
	_, err = manager.ValidateAccessToken(activation)
	assert.Error(t, err)

	access, err := manager.GenerateAccessToken(7, "bob", false)
	assert.NoError(t, err)
	_, err = manager.ValidateActivationToken(access)
	assert.Error(t, err)
	_, err = manager.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredTokenIsRejected(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.ActivationExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateActivationToken(7)
	assert.NoError(t, err)

	_, err = manager.ValidateActivationToken(token)
	assert.Error(t, err)
}

func TestJWTManager_WrongSecretIsRejected(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(1, "alice", false)
	assert.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "a-different-secret"
	_, err = NewJWTManager(other).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RefreshTokenExpiryIsParameterized(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateRefreshToken(1, "alice", 14*24*time.Hour)
	assert.NoError(t, err)

	claims, err := manager.ValidateRefreshToken(token)
	assert.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 13*24*time.Hour)

	// Refresh tokens never carry admin status
	assert.False(t, claims.IsAdmin)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
