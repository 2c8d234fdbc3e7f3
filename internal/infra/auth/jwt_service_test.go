package auth

import (
	"testing"
	"time"

	"market/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()
	roles := []string{"seller"}

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, roles)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token against the access secret
	token, err := jwtService.ValidateToken(accessToken, cfg.SecretKey.Access)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "access", claims["type"])
	gotRoles, ok := claims["roles"].([]any)
	require.True(t, ok)
	require.Len(t, gotRoles, 1)
	assert.Equal(t, "seller", gotRoles[0])

	// Validate refresh token against the refresh secret
	token, err = jwtService.ValidateToken(refreshToken, cfg.SecretKey.Refresh)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok = token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "refresh", claims["type"])
	// Refresh tokens don't carry roles
	_, hasRoles := claims["roles"]
	assert.False(t, hasRoles)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	accessToken, _, err := jwtService.GenerateTokens(uuid.New(), []string{"customer"})
	require.NoError(t, err)

	token, err := jwtService.ValidateToken(accessToken, "a-completely-different-secret")
	assert.Error(t, err)
	if token != nil {
		assert.False(t, token.Valid)
	}
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format", cfg.SecretKey.Access)
	assert.Error(t, err)
	if token != nil {
		assert.False(t, token.Valid)
	}
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	duration := jwtService.GetRefreshTokenDuration()
	expectedDuration := time.Hour * 24 * 7 // 7 days
	assert.Equal(t, expectedDuration, duration)
}
