package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/services"

	"github.com/rs/zerolog/log"
)

type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware creates a middleware for token authentication. The token is
// read from the Authorization header, falling back to the session cookie.
func AuthMiddleware(tokens *services.TokenService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := TokenFromRequest(r, cookieName)
			if err != nil {
				respondError(w, err)
				return
			}

			claims, err := tokens.Verify(r.Context(), token)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the bearer token or the session cookie
func TokenFromRequest(r *http.Request, cookieName string) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", apperror.Unauthorized("Invalid authorization header format")
		}
		return parts[1], nil
	}

	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", apperror.Unauthorized("Token not found")
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error().Err(err).Msg("Request failed in middleware")
	}
	writeError(w, apperror.MessageOf(err), apperror.HTTPStatus(kind))
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorBody{Success: false, Error: message})
}
