package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", 4*time.Hour)

	token, exp, err := m.GenerateToken("u1", "a@x.com", "alice_01")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(4*time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "alice_01", claims.Username)
}

func TestJWTManager_TokensAreUnique(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t1, _, err := m.GenerateToken("u1", "a@x.com", "alice_01")
	require.NoError(t, err)
	t2, _, err := m.GenerateToken("u1", "a@x.com", "alice_01")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestJWTManager_ParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Second)

	token, _, err := m.GenerateToken("u1", "a@x.com", "alice_01")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ParseRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("right-secret", time.Hour)
	token, _, err := m.GenerateToken("u1", "a@x.com", "alice_01")
	require.NoError(t, err)

	other := &JWTManager{Secret: []byte("wrong-secret"), TTL: time.Hour}
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ParseRejectsTampered(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, _, err := m.GenerateToken("u1", "a@x.com", "alice_01")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// Swap the payload for a different one; the signature no longer covers it.
	tampered := parts[0] + ".eyJpZCI6ImludHJ1ZGVyIn0." + parts[2]

	_, err = m.ParseToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ParseRejectsMalformed(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	_, err := m.ParseToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
