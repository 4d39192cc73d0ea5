package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashIsSalted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	h1, err := h.Hash("secret1")
	require.NoError(t, err)
	h2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ")
	assert.True(t, h.Verify("secret1", h1))
	assert.True(t, h.Verify("secret1", h2))
}

func TestPasswordHasher_VerifyRejectsWrongPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.Verify("", hash))
	assert.False(t, h.Verify("secret1", "not-a-bcrypt-hash"))
}

func TestNewPasswordHasher_ClampsInvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).Cost)
	assert.Equal(t, 10, NewPasswordHasher(10).Cost)
}
