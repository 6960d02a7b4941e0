// Package middleware provides the authentication, authorization and request
// logging middlewares used by the router.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"TOURMAP_BACK-END/internal/config"
	"TOURMAP_BACK-END/internal/utils"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// WithClaims returns a copy of ctx carrying the decoded token claims.
func WithClaims(ctx context.Context, claims *JWTClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*JWTClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*JWTClaims)
	return claims, ok && claims != nil
}

// AuthMiddleware validates JWT tokens in the Authorization header
func AuthMiddleware(cfg *config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, msg := claimsFromRequest(r, cfg)
			if claims == nil {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims when a valid token is present and lets the
// request through untouched otherwise.
func OptionalAuth(cfg *config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, _ := claimsFromRequest(r, cfg); claims != nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly rejects requests whose token does not carry isAdmin.
// It must run after AuthMiddleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !claims.IsAdmin {
			utils.WriteErrorResponse(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromRequest(r *http.Request, cfg *config.JWTConfig) (*JWTClaims, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	// Extract token from "Bearer <token>"
	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return nil, "Invalid authorization header format"
	}

	claims, err := ValidateToken(tokenParts[1], cfg)
	if err != nil {
		return nil, "Invalid token"
	}
	return claims, ""
}
