package auth

import "context"

type AuthService interface {
	// Login exchanges the manager passcode for an access token.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error
}
