// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"market/config"
	"market/internal/domain/service"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtService signs and validates HS256 tokens. Access tokens carry the
// caller's roles so authorization never needs a user lookup; refresh tokens
// carry only identity.
type jwtService struct {
	accessSecret  string
	refreshSecret string
}

// NewJWTService builds the TokenService from configured secrets.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
	}, nil
}

// GenerateTokens issues an access and refresh token pair for the user.
func (s *jwtService) GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error) {
	now := time.Now()

	accessToken, err = signToken(accessClaims(userID, roles, now), s.accessSecret)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = signToken(refreshClaims(userID, now), s.refreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateToken parses a token string and rejects anything not signed HS256
// with the given secret.
func (s *jwtService) ValidateToken(tokenString string, secret string) (*jwt.Token, error) {
	return jwt.Parse(tokenString,
		func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
}

// GetRefreshTokenDuration returns how long refresh tokens stay valid.
func (s *jwtService) GetRefreshTokenDuration() time.Duration {
	return refreshTokenTTL
}

func accessClaims(userID uuid.UUID, roles []string, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   userID,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
		"type":  tokenTypeAccess,
		"roles": roles,
	}
}

func refreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  userID,
		"iat":  now.Unix(),
		"exp":  now.Add(refreshTokenTTL).Unix(),
		"type": tokenTypeRefresh,
	}
}

func signToken(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
