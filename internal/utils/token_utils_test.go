package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("member-1", "admin", "secret", time.Hour, "treasury")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "treasury", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	token, err := GenerateJWT("member-1", "member", "secret", time.Hour, "treasury")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT("member-1", "member", "secret", -time.Minute, "treasury")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	_, err := HashPassword("abc")
	assert.Error(t, err)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(4)
	require.NoError(t, err)
	assert.Len(t, a, 8)
	assert.Regexp(t, `^[0-9a-f]{8}$`, a)

	b, err := RandomHex(4)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = RandomHex(0)
	assert.Error(t, err)
}
