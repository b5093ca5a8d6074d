package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"diddht/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	Subject string
	Scopes  []string
	JTI     string
}

type contextKeyScopes struct{}

// ContextKeyScopes is exported for tests that build contexts by hand.
var ContextKeyScopes = contextKeyScopes{}

// GetScopes returns the scopes granted to the caller. Nil means the token
// was not scoped.
func GetScopes(ctx context.Context) []string {
	scopes, _ := ctx.Value(ContextKeyScopes).([]string)
	return scopes
}

// Allows reports whether the caller may invoke method. Unscoped tokens
// and unauthenticated deployments allow everything.
func Allows(ctx context.Context, method string) bool {
	scopes := GetScopes(ctx)
	return len(scopes) == 0 || slices.Contains(scopes, method)
}

func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithSubject(ctx, claims.Subject)
			if len(claims.Scopes) > 0 {
				ctx = contextWithScopes(ctx, claims.Scopes)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}

func contextWithScopes(ctx context.Context, scopes []string) context.Context {
	return context.WithValue(ctx, ContextKeyScopes, scopes)
}
