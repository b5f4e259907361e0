package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	jwt.Service
	passcodeHash []byte
	logger       *zap.Logger
}

// NewAuthService takes the bcrypt hash of the manager passcode.
func NewAuthService(jwtService jwt.Service, passcodeHash string, logger *zap.Logger) auth.AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{
		Service:      jwtService,
		passcodeHash: []byte(passcodeHash),
		logger:       logger,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword(a.passcodeHash, []byte(req.Passcode)); err != nil {
		a.logger.Warn("manager login rejected")
		return auth.TokenResponse{}, auth.ErrInvalidPasscode
	}

	token, jti, expiresAt, err := a.GenerateAccessToken(jwt.RoleManager, jwt.RoleManager)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	a.logger.Info("manager logged in", zap.String("jti", jti))
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 jwt.RoleManager,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.TokenID == "" {
		return auth.ErrInvalidToken
	}
	if err := a.RevokeToken(ctx, req.TokenID, time.Unix(req.ExpiresAt, 0)); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	a.logger.Info("manager logged out", zap.String("jti", req.TokenID))
	return nil
}
