package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService(
		"test-secret-key-for-testing-purposes",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestTokenService_GenerateAccessToken_Success(t *testing.T) {
	service := newTestTokenService()

	token, expiresAt, err := service.GenerateAccessToken("op-123", "ops@example.com", "admin")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestTokenService_ValidateAccessToken_Valid(t *testing.T) {
	service := newTestTokenService()

	token, _, err := service.GenerateAccessToken("op-456", "ops@example.com", "admin")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, "op-456", claims.OperatorID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "op-456", claims.Subject)
}

func TestTokenService_ValidateAccessToken_Expired(t *testing.T) {
	// Create a service with very short expiry
	service := NewTokenService("test-secret", 1*time.Millisecond, 7*24*time.Hour)

	token, _, err := service.GenerateAccessToken("op-123", "ops@example.com", "admin")
	require.NoError(t, err)

	// Wait for token to expire
	time.Sleep(10 * time.Millisecond)

	claims, err := service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestTokenService_ValidateAccessToken_Invalid(t *testing.T) {
	service := newTestTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"random string", "not-a-valid-token"},
		{"malformed JWT", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenService_ValidateAccessToken_WrongSignature(t *testing.T) {
	service1 := NewTokenService("secret-key-1", 15*time.Minute, 7*24*time.Hour)
	service2 := NewTokenService("secret-key-2", 15*time.Minute, 7*24*time.Hour)

	token, _, err := service1.GenerateAccessToken("op-123", "ops@example.com", "admin")
	require.NoError(t, err)

	// Validate with a different secret
	claims, err := service2.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenService_ValidateAccessToken_WrongAlgorithm(t *testing.T) {
	service := newTestTokenService()

	// Token signed with "none" must be rejected
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		OperatorID: "op-123",
		Email:      "ops@example.com",
		Role:       "admin",
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenService_RefreshToken_RoundTrip(t *testing.T) {
	service := newTestTokenService()

	token, expiresAt, err := service.GenerateRefreshToken("op-789")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	operatorID, err := service.ValidateRefreshToken(token)

	require.NoError(t, err)
	assert.Equal(t, "op-789", operatorID)
}

func TestTokenService_ValidateRefreshToken_Expired(t *testing.T) {
	service := NewTokenService("test-secret", 15*time.Minute, 1*time.Millisecond)

	token, _, err := service.GenerateRefreshToken("op-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	operatorID, err := service.ValidateRefreshToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Empty(t, operatorID)
}

func TestTokenService_ValidateRefreshToken_Invalid(t *testing.T) {
	service := newTestTokenService()

	operatorID, err := service.ValidateRefreshToken("invalid-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, operatorID)
}

func TestTokenService_RefreshTokenHasNoIdentityClaims(t *testing.T) {
	service := newTestTokenService()

	refreshToken, _, err := service.GenerateRefreshToken("op-123")
	require.NoError(t, err)

	// A refresh token parses as an access token but carries no identity,
	// so callers must check the custom fields before trusting it.
	claims, err := service.ValidateAccessToken(refreshToken)

	require.NoError(t, err)
	assert.Empty(t, claims.OperatorID)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
	assert.Equal(t, "op-123", claims.Subject)
}
