package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/utils"
)

type ContextKey string

const (
	AdminKey   = ContextKey("admin")
	VisitorKey = ContextKey("visitor")
)

// AdminFromContext returns the username of the authenticated admin.
func AdminFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(AdminKey).(string)
	return username, ok && username != ""
}

func AuthMiddleware(tokens *utils.JWTManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenHeader := r.Header.Get("Authorization")
			if tokenHeader == "" {
				logger.Info("missing Authorization header", zap.String("method", r.Method), zap.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				logger.Info("invalid Authorization header format", zap.String("method", r.Method), zap.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := tokens.ValidateJWT(tokenParts[1])
			if err != nil {
				logger.Info("rejected token", zap.Error(err))
				if errors.Is(err, utils.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "Token has expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
