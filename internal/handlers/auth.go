package handlers

import (
	"net/http"
	"time"

	"job-board-backend/internal/config"
	"job-board-backend/internal/middleware"
	"job-board-backend/internal/models"
	"job-board-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// LoginRequest represents the login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthHandler handles session endpoints
type AuthHandler struct {
	userService  *services.UserService
	tokenService *services.TokenService
	cookie       config.JWTConfig
	maxBytes     int64
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService, tokenService *services.TokenService, cookie config.JWTConfig, maxBytes int64) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		cookie:       cookie,
		maxBytes:     maxBytes,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, h.maxBytes, "")
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	defer p.Close()

	var req LoginRequest
	if err := bind(p.fields, &req); err != nil {
		respondFailure(w, r, err)
		return
	}

	session, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.Claims.ExpiresAt,
		MaxAge:   int(h.tokenService.ExpiresIn().Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info().Str("user_id", session.User.ID.Hex()).Msg("User logged in")

	respondJSON(w, http.StatusOK, LoginResponse{Token: session.Token, User: session.User})
}

// Logout handles GET /api/v1/auth/logout. It always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := middleware.TokenFromRequest(r, h.cookie.CookieName); err == nil {
		if claims, err := h.tokenService.Verify(r.Context(), token); err == nil {
			if err := h.tokenService.Revoke(r.Context(), claims); err != nil {
				log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to revoke token")
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}
