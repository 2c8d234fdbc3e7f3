package auth

import (
	"testing"

	"market/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(cost int) *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: cost}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher(bcrypt.MinCost)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password
	assert.True(t, hasher.Check(password, hash))

	// Incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Empty password
	assert.False(t, hasher.Check("", hash))

	// Invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ConfiguredCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := newTestHasher(customCost)

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_DefaultCostWhenUnconfigured(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)

	// Out-of-range values fall back to the default as well
	outOfRange := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, outOfRange.cost)
}
