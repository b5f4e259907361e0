package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func setupAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("246810"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, jwt.NewMemoryBlacklist())
	require.NoError(t, err)

	return NewAuthService(jwtService, string(hash), zap.NewNop()), jwtService
}

// ===== LOGIN TESTS =====

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtService := setupAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Passcode: "246810"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, jwt.RoleManager, resp.Role)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	_, _, err = jwt.AccessClaims(token)
	assert.NoError(t, err)
}

func TestAuthService_Login_WrongPasscode(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Passcode: "135790"})

	assert.ErrorIs(t, err, auth.ErrInvalidPasscode)
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Passcode: "12"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "passcode", verrs[0].Field)
}

// ===== LOGOUT TESTS =====

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := setupAuthService(t)

	resp, err := svc.Login(ctx, auth.LoginRequest{Passcode: "246810"})
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	jti, exp, err := jwt.AccessClaims(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, auth.LogoutRequest{TokenID: jti, ExpiresAt: exp.Unix()}))

	revoked, err := jwtService.IsTokenRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_Logout_MissingTokenID(t *testing.T) {
	svc, _ := setupAuthService(t)

	err := svc.Logout(context.Background(), auth.LogoutRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
