package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RequireManager requires the manager role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Manager access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != jwt.RoleManager {
			response.Forbidden(w, "Manager access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
