package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Sign(secret, "7", "admin@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID())
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Sign([]byte("right"), "1", "a@b.c", time.Hour)
	require.NoError(t, err)

	_, err = Parse([]byte("wrong"), token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := Sign(secret, "1", "a@b.c", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("secret"), "not-a-token")
	assert.Error(t, err)
}
