package auth

import "github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Passcode string `json:"passcode"`
}

func (r *LoginRequest) Validate() error {
	if !validator.IsValidPasscode(r.Passcode) {
		return validator.ValidationErrors{{
			Field:   "passcode",
			Message: "passcode must be 4-12 digits",
		}}
	}
	return nil
}

type TokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	Role                 string `json:"role"`
}

// LogoutRequest carries the claims of the token being revoked.
type LogoutRequest struct {
	TokenID   string
	ExpiresAt int64
}
