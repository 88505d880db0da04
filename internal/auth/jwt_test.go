package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRequiresSecret(t *testing.T) {
	assert.Error(t, Init("", time.Hour))
	assert.NoError(t, Init("test-secret", time.Hour))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	tokenString, err := GenerateJWT("user-123", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	require.NoError(t, Init("first-secret", time.Hour))

	tokenString, err := GenerateJWT("user-123", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, Init("second-secret", time.Hour))

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	claims := jwt.MapClaims{
		"user_id": "user-123",
		"email":   "alice@example.com",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(expired)
	assert.Error(t, err)
}
