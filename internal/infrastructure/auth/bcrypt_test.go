package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("sunny-room-42")
	require.NoError(t, err)
	assert.NotEqual(t, "sunny-room-42", hash)

	assert.NoError(t, hasher.Compare(hash, "sunny-room-42"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong-password"), ErrPasswordMismatch)
}

func TestNewBcryptHasher_ClampsInvalidCost(t *testing.T) {
	hasher := NewBcryptHasher(1000)

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
