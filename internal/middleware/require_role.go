package middleware

import (
	"net/http"

	"flightbay/techlog/internal/auth"
)

// IsEditorMiddleware allows only callers who may create or mutate records.
func IsEditorMiddleware() func(http.Handler) http.Handler {
	return requirePermission("edit", "Forbidden. Editor role required")
}

// IsAdminMiddleware allows only organization admins.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return requirePermission("admin", "Forbidden. Admin role required")
}

func requirePermission(action, denial string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !claims.HasPermission(action) {
				http.Error(w, denial, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
