package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordManager_HashAndVerify(t *testing.T) {
	manager := NewPasswordManager(bcrypt.MinCost)

	hash, err := manager.HashPassword("secret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, manager.VerifyPassword(hash, "secret-password"))
	assert.Error(t, manager.VerifyPassword(hash, "wrong-password"))
}

func TestPasswordManager_InvalidCostFallsBack(t *testing.T) {
	manager := NewPasswordManager(99)

	hash, err := manager.HashPassword("secret-password")
	assert.NoError(t, err)
	assert.NoError(t, manager.VerifyPassword(hash, "secret-password"))
}

func TestPasswordManager_ValidatePasswordStrength(t *testing.T) {
	manager := NewPasswordManager(bcrypt.MinCost)

	assert.Error(t, manager.ValidatePasswordStrength("short"))
	assert.Error(t, manager.ValidatePasswordStrength("this-password-is-far-too-long-to-accept"))
	assert.NoError(t, manager.ValidatePasswordStrength("goodpass123"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice_01"))
	assert.NoError(t, ValidateUsername("user-name"))

	assert.Error(t, ValidateUsername("ab"))                         // too short
	assert.Error(t, ValidateUsername("this-username-is-too-long-x")) // over 20 chars
	assert.Error(t, ValidateUsername("bad name"))                   // space
	assert.Error(t, ValidateUsername("bad!name"))                   // punctuation
}
