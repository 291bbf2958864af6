// Package rbac provides role-based route protection.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/crafthaven/pkg/middleware"
	"github.com/shashiranjanraj/crafthaven/pkg/response"
)

// HasRole returns middleware that allows access only to callers whose role is
// in the permitted set. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok || !allowed[role] {
				response.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
