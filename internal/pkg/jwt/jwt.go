package jwt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// RoleManager is the only role this service issues.
const RoleManager = "manager"

var ErrNotAccessToken = errors.New("token is not an access token")

// Blacklist stores revoked token ids. *redis.Client satisfies it.
type Blacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

type Service interface {
	GenerateAccessToken(subject string, role string) (token string, jti string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	blacklist             Blacklist
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService signs HS256 tokens. A nil blacklist falls back to an in-process one.
func NewJWTService(secretKey string, accessTokenExpirationTime string, blacklist Blacklist) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	if blacklist == nil {
		blacklist = NewMemoryBlacklist()
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		blacklist:             blacklist,
		now:                   time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(subject string, role string) (token string, jti string, expiresAt int64, err error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", "", 0, err
	}
	now := j.now()
	expiresAt = now.Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"role": role,
		"type": "access",
		"jti":  id.String(),
		"iat":  now.Unix(),
		"exp":  expiresAt,
	})
	return tokenString, id.String(), expiresAt, err
}

func (j *JWTService) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	return j.blacklist.BlacklistToken(ctx, jti, expiresAt.Sub(j.now()))
}

func (j *JWTService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return j.blacklist.IsBlacklisted(ctx, jti)
}

// AccessClaims extracts the token id and expiry from a verified access token.
func AccessClaims(token jwt.Token) (jti string, expiresAt time.Time, err error) {
	if tokenType, ok := token.Get("type"); !ok || tokenType != "access" {
		return "", time.Time{}, ErrNotAccessToken
	}
	if token.JwtID() == "" {
		return "", time.Time{}, ErrNotAccessToken
	}
	return token.JwtID(), token.Expiration(), nil
}

// MemoryBlacklist keeps revoked ids in process memory until they expire.
type MemoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryBlacklist) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, until := range m.revoked {
		if !until.After(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[jti] = now.Add(ttl)
	return nil
}

func (m *MemoryBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.revoked[jti]
	return ok && until.After(m.now()), nil
}
