package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"medical-records-api/internal/domain/entity"
	"medical-records-api/pkg/response"

	"github.com/gorilla/mux"
)

// RequireRole creates a middleware that checks if the account has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if strings.EqualFold(role, allowedRole) {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireSelfOrAdmin lets a request through when the {id} path variable names the
// authenticated account, or when the caller is an admin
func RequireSelfOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetAccountIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Account information not found")
			return
		}

		if role, _ := GetRoleFromContext(r.Context()); strings.EqualFold(role, entity.RoleAdmin) {
			next.ServeHTTP(w, r)
			return
		}

		targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil || targetID != accountID {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}

		next.ServeHTTP(w, r)
	})
}
