// Package middleware provides HTTP middleware for the SignCast API.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/signcast/signcast/internal/api/auth"
)

// contextKey is an unexported type for context keys defined in this package.
type contextKey string

// claimsContextKey is the context key under which validated JWT claims are stored.
const claimsContextKey contextKey = "jwt-claims"

// GetClaimsFromContext returns the JWT claims stored in the request context,
// or nil if the request was not authenticated.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// extractBearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// writeProblem writes an RFC 7807 problem response. Duplicated from the
// handlers package to keep middleware free of a handlers import.
func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "about:blank",
		"title":  title,
		"status": status,
		"detail": detail,
	})
}

// JWTAuth returns middleware that validates the request's bearer token and
// stores the claims in the request context. Requests without a valid access
// token are rejected with 401.
func JWTAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Missing or malformed Authorization header")
				return
			}

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				if err == auth.ErrExpiredToken {
					writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Token has expired")
					return
				}
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that rejects requests from non-admin users.
// Must be placed after JWTAuth in the middleware chain.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole("admin")
}

// RequireRole returns middleware that rejects requests from users whose role
// is not in the allowed set. Must be placed after JWTAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaimsFromContext(r.Context())
			if claims == nil {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
				return
			}

			if !slices.Contains(roles, claims.Role) {
				writeProblem(w, http.StatusForbidden, "Forbidden", "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
