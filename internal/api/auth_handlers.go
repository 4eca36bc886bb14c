package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/reseller-console/internal/api/middleware"
	"github.com/example/reseller-console/internal/auth"
	"github.com/example/reseller-console/internal/infrastructure/store"
)

// AuthHandlers handles operator authentication.
type AuthHandlers struct {
	operators store.OperatorStore
	tokens    *auth.TokenService
}

func NewAuthHandlers(operators store.OperatorStore, tokens *auth.TokenService) *AuthHandlers {
	return &AuthHandlers{
		operators: operators,
		tokens:    tokens,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OperatorResponse represents operator data in responses
type OperatorResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Login authenticates an operator and sets the token cookies
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	op, err := h.operators.GetOperatorByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(req.Password, op.PasswordHash) {
		respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	h.setAuthCookies(w, r, op)

	respondJSON(w, http.StatusOK, operatorResponse(op))
}

// Logout clears the token cookies
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Refresh exchanges a valid refresh token for fresh cookies
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondJSONError(w, "No refresh token", http.StatusUnauthorized)
		return
	}

	operatorID, err := h.tokens.ValidateRefreshToken(refreshCookie.Value)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	op, err := h.operators.GetOperator(r.Context(), operatorID)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "Operator not found", http.StatusUnauthorized)
		return
	}

	h.setAuthCookies(w, r, op)

	respondJSON(w, http.StatusOK, map[string]string{"message": "Token refreshed"})
}

// Me returns the current authenticated operator's account
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetOperatorFromContext(r.Context())
	if !ok {
		respondJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	op, err := h.operators.GetOperator(r.Context(), claims.OperatorID)
	if err != nil {
		respondJSONError(w, "Operator not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, operatorResponse(op))
}

// Helper methods

func operatorResponse(op *store.Operator) OperatorResponse {
	return OperatorResponse{
		ID:        op.ID,
		Email:     op.Email,
		Name:      op.Name,
		Role:      op.Role,
		CreatedAt: op.CreatedAt,
	}
}

func (h *AuthHandlers) setAuthCookies(w http.ResponseWriter, r *http.Request, op *store.Operator) {
	accessToken, accessExpiry, _ := h.tokens.GenerateAccessToken(op.ID, op.Email, op.Role)
	refreshToken, refreshExpiry, _ := h.tokens.GenerateRefreshToken(op.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/auth/refresh",
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandlers) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/auth/refresh",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
