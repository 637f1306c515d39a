package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	"github.com/gourmetgo/storefront/internal/utils/response"
)

type contextKey string

const UserContextKey = contextKey("user")

// SessionChecker verifies the persisted session record still exists.
// Logout deletes it, which must invalidate the token before expiry.
type SessionChecker interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
}

type AuthMiddleware struct {
	jwtKey   []byte
	sessions SessionChecker
}

func NewAuthMiddleware(jwtKey []byte, sessions SessionChecker) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey, sessions: sessions}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format: "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		tokenString := tokenParts[1]

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
				return nil, errors.BadRequestError("unexpected signing method")
			}
			return m.jwtKey, nil
		})

		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if !token.Valid {
			logger.Warn("Invalid token")
			response.Error(w, errors.UnauthorizedError("Invalid token"))
			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("sessionId", claims.SessionID.String()))
			response.Error(w, errors.UnauthorizedError("Token expired"))
			return
		}

		// The token is only as alive as its session record.
		if _, err := m.sessions.Get(r.Context(), claims.SessionID); err != nil {
			logger.Warn("Session record gone", slog.String("sessionId", claims.SessionID.String()))
			response.Error(w, errors.UnauthorizedError("Session is no longer active"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(slog.String("sessionId", claims.SessionID.String()), slog.String("role", string(claims.Role)))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin gates dashboard operations on the admin role.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		claims, ok := r.Context().Value(UserContextKey).(*models.Claims)
		if !ok || claims.Role != models.RoleAdmin {
			response.Error(w, errors.ForbiddenError("Admin role required"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok
}
