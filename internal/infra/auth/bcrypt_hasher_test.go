package auth

import (
	"testing"

	"paygate/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = 4 // minimum cost keeps tests fast

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("SecurePass123!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "SecurePass123!", hash)

	assert.True(t, hasher.Check("SecurePass123!", hash))
	assert.False(t, hasher.Check("WrongPassword", hash))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := newTestHasher()

	assert.False(t, hasher.Check("anything", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("anything", ""))
}

func TestNewBcryptHasher_CostClamp(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = 99 // out of range

	hasher := NewBcryptHasher(cfg).(*bcryptHasher)
	assert.Equal(t, config.DefaultBcryptCost, hasher.cost)
}
