package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pockettrip-backend/internal/services"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware creates a middleware for JWT authentication
func AuthMiddleware(userService *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			identity, err := userService.ValidateJWT(parts[1])
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated identity from context
func GetIdentity(ctx context.Context) services.Identity {
	identity, ok := ctx.Value(identityKey).(services.Identity)
	if !ok {
		return services.Identity{}
	}
	return identity
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) string {
	return GetIdentity(ctx).UserID
}

// respondError sends an error response. Duplicated from the handlers
// package; importing it from there would be an import cycle.
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ValidateWebSocketToken validates a JWT token from a WebSocket query
// parameter and returns the caller's identity
func ValidateWebSocketToken(token string, userService *services.UserService) (services.Identity, error) {
	if token == "" {
		return services.Identity{}, fmt.Errorf("token required")
	}
	return userService.ValidateJWT(token)
}
