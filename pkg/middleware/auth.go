package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/crafthaven/pkg/auth"
	"github.com/shashiranjanraj/crafthaven/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// Auth validates the Bearer token and stores the caller's {userId, role}
// in the request context. Identity never lives in ambient state; downstream
// code reads it with UserIDFromCtx / RoleFromCtx (or the ctx helpers).
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		ctx = context.WithValue(ctx, roleKey{}, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores the caller's identity when a valid Bearer token is
// present but lets anonymous requests through. Used on public routes
// whose response varies for owners (e.g. inactive listings).
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token != "" && token != header {
			if claims, err := auth.ValidateToken(token); err == nil {
				ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
				ctx = context.WithValue(ctx, roleKey{}, claims.Role)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromCtx returns the authenticated user's ID, if any.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey{}).(string)
	return role, ok
}
