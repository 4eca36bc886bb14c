package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/reseller-console/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService("test-secret-key", 15*time.Minute, 7*24*time.Hour)
}

func okHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthMiddleware_ValidToken_Header(t *testing.T) {
	tokens := newTestTokenService()
	middleware := AuthMiddleware(tokens)

	token, _, err := tokens.GenerateAccessToken("op-123", "ops@example.com", "admin")
	require.NoError(t, err)

	var capturedClaims *auth.Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedClaims, _ = GetOperatorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, capturedClaims)
	assert.Equal(t, "op-123", capturedClaims.OperatorID)
	assert.Equal(t, "ops@example.com", capturedClaims.Email)
	assert.Equal(t, "admin", capturedClaims.Role)
}

func TestAuthMiddleware_ValidToken_Cookie(t *testing.T) {
	tokens := newTestTokenService()
	middleware := AuthMiddleware(tokens)

	token, _, err := tokens.GenerateAccessToken("op-456", "cookie@example.com", "admin")
	require.NoError(t, err)

	var capturedClaims *auth.Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedClaims, _ = GetOperatorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, capturedClaims)
	assert.Equal(t, "op-456", capturedClaims.OperatorID)
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	middleware := AuthMiddleware(newTestTokenService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	middleware := AuthMiddleware(newTestTokenService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 1*time.Millisecond, 7*24*time.Hour)
	middleware := AuthMiddleware(tokens)

	token, _, err := tokens.GenerateAccessToken("op-123", "ops@example.com", "admin")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSignature(t *testing.T) {
	tokens1 := auth.NewTokenService("secret-1", 15*time.Minute, 7*24*time.Hour)
	tokens2 := auth.NewTokenService("secret-2", 15*time.Minute, 7*24*time.Hour)

	token, _, err := tokens1.GenerateAccessToken("op-123", "ops@example.com", "admin")
	require.NoError(t, err)

	middleware := AuthMiddleware(tokens2)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============================================
// Require Role Middleware Tests
// ============================================

func TestRequireRole_HasRole(t *testing.T) {
	middleware := RequireRole("admin")

	claims := &auth.Claims{OperatorID: "op-123", Role: "admin"}
	ctx := context.WithValue(context.Background(), OperatorContextKey, claims)

	req := httptest.NewRequest(http.MethodPost, "/fulfill", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	middleware := RequireRole("admin")

	claims := &auth.Claims{OperatorID: "op-123", Role: "viewer"}
	ctx := context.WithValue(context.Background(), OperatorContextKey, claims)

	req := httptest.NewRequest(http.MethodPost, "/fulfill", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestRequireRole_NoClaims(t *testing.T) {
	middleware := RequireRole("admin")

	req := httptest.NewRequest(http.MethodPost, "/fulfill", nil)
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============================================
// Cron Auth Middleware Tests
// ============================================

func TestCronAuthMiddleware_SecretHeader(t *testing.T) {
	middleware := CronAuthMiddleware("cron-secret")

	req := httptest.NewRequest(http.MethodPost, "/cron/check", nil)
	req.Header.Set("X-Cron-Secret", "cron-secret")
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCronAuthMiddleware_BearerSecret(t *testing.T) {
	middleware := CronAuthMiddleware("cron-secret")

	req := httptest.NewRequest(http.MethodPost, "/cron/check", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCronAuthMiddleware_WrongSecret(t *testing.T) {
	middleware := CronAuthMiddleware("cron-secret")

	req := httptest.NewRequest(http.MethodPost, "/cron/check", nil)
	req.Header.Set("X-Cron-Secret", "wrong")
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCronAuthMiddleware_EmptySecretDisablesRoute(t *testing.T) {
	middleware := CronAuthMiddleware("")

	req := httptest.NewRequest(http.MethodPost, "/cron/check", nil)
	req.Header.Set("X-Cron-Secret", "")
	rec := httptest.NewRecorder()

	middleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============================================
// Helper Functions Tests
// ============================================

func TestGetOperatorFromContext(t *testing.T) {
	claims := &auth.Claims{OperatorID: "op-123", Email: "ops@example.com", Role: "admin"}
	ctx := context.WithValue(context.Background(), OperatorContextKey, claims)

	result, ok := GetOperatorFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, result)

	result, ok = GetOperatorFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestGetOperatorID(t *testing.T) {
	claims := &auth.Claims{OperatorID: "op-123"}
	ctx := context.WithValue(context.Background(), OperatorContextKey, claims)

	assert.Equal(t, "op-123", GetOperatorID(ctx))
	assert.Empty(t, GetOperatorID(context.Background()))
}
