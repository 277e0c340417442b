package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"server/internal/infra/identity"
)

// TokenVerifier is the identity oracle: it turns a raw bearer credential
// into verified claims or fails.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (identity.Claims, error)
}

type claimsContextKey struct{}

var claimsKey = claimsContextKey{}

// Auth extracts the Authorization bearer token, verifies it and stores the
// resulting claims in the request context. Verification failures end the
// request with 401 before any handler runs.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "invalid authorization header")
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
			defer cancel()
			claims, err := verifier.VerifyIDToken(ctx, parts[1])
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// ClaimsFromContext returns the verified claims, if any.
func ClaimsFromContext(ctx context.Context) (identity.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(identity.Claims)
	return claims, ok
}

// ContextWithClaims attaches verified claims to the context.
func ContextWithClaims(ctx context.Context, claims identity.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
