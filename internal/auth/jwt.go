package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/avelar/taskhub-be/internal/api/respond"
	"github.com/avelar/taskhub-be/internal/apperr"
	"github.com/avelar/taskhub-be/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type contextKey string

const userKey = contextKey("authUser")

// TokenService issues and verifies stateless bearer tokens. Tokens carry the
// user id and an expiry; there is no server-side revocation list, so a token
// stays valid until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token bound to the given user id.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning the bound user id.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", apperr.Unauthorized("Invalid or expired token")
	}
	return claims.UserID, nil
}

// UserLoader resolves a user id to a full identity.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// Middleware guards protected routes. It requires a Bearer token in the
// Authorization header, verifies it, re-checks that the bound user still
// exists and attaches the identity to the request context. It never runs for
// signup, login or health routes.
func Middleware(tokens *TokenService, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respond.Err(w, apperr.Unauthorized("Authorization header required"))
				return
			}

			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || scheme != "Bearer" || tokenStr == "" {
				respond.Err(w, apperr.Unauthorized("Invalid Authorization header format"))
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				respond.Err(w, err)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				respond.Err(w, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user attached by Middleware.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
