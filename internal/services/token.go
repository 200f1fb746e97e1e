package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-backend/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenRevoker records revoked token ids until they expire
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenClaims is the verified content of a session token
type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and verifies session tokens
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	revoker   TokenRevoker
	now       func() time.Time
}

// NewTokenService creates a new token service. revoker may be nil, in which
// case logout only clears the cookie.
func NewTokenService(secret string, expiresIn time.Duration, revoker TokenRevoker) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		revoker:   revoker,
		now:       time.Now,
	}
}

// Issue generates a signed token for a user
func (s *TokenService) Issue(userID string) (string, *TokenClaims, error) {
	now := s.now()
	claims := &TokenClaims{
		UserID:    userID,
		TokenID:   uuid.New().String(),
		ExpiresAt: now.Add(s.expiresIn),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  claims.UserID,
		"jti": claims.TokenID,
		"exp": claims.ExpiresAt.Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims, nil
}

// Verify checks the signature, expiry and revocation state of a token
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, apperror.Unauthorized("Token not found")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Unauthorized("Token expired")
		}
		return nil, apperror.Unauthorized("Invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperror.Unauthorized("Invalid token")
	}

	userID, ok := mapClaims["id"].(string)
	if !ok || userID == "" {
		return nil, apperror.Unauthorized("Invalid token")
	}
	tokenID, _ := mapClaims["jti"].(string)

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, apperror.Unauthorized("Invalid token")
	}

	claims := &TokenClaims{UserID: userID, TokenID: tokenID, ExpiresAt: exp.Time}

	if s.revoker != nil && tokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, tokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, apperror.Unauthorized("Token revoked")
		}
	}

	return claims, nil
}

// Revoke denies the token for the rest of its lifetime
func (s *TokenService) Revoke(ctx context.Context, claims *TokenClaims) error {
	if s.revoker == nil || claims == nil || claims.TokenID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.revoker.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ExpiresIn reports the lifetime of issued tokens
func (s *TokenService) ExpiresIn() time.Duration {
	return s.expiresIn
}
