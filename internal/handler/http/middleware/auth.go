package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type tokenIDKey struct{}

// AuthRequired accepts verified, unrevoked access tokens and stores the
// token id and expiry on the request context for logout.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			jti, expiresAt, err := jwt.AccessClaims(token)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			revoked, err := jwtService.IsTokenRevoked(r.Context(), jti)
			if err != nil {
				response.InternalServerError(w, "Failed to check token status")
				return
			}
			if revoked {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			ctx := context.WithValue(r.Context(), tokenIDKey{}, auth.LogoutRequest{
				TokenID:   jti,
				ExpiresAt: expiresAt.Unix(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// TokenFromContext returns the claims stored by AuthRequired.
func TokenFromContext(ctx context.Context) (auth.LogoutRequest, bool) {
	req, ok := ctx.Value(tokenIDKey{}).(auth.LogoutRequest)
	return req, ok
}
