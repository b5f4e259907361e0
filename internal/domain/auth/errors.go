package auth

import "errors"

var (
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrTokenRevoked    = errors.New("token has been revoked")
)
