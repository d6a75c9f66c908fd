package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("65f0c0ffee", "ada@mindbloom.io", "admin", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "65f0c0ffee", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejectsWrongSecretAndExpired(t *testing.T) {
	token, err := GenerateToken("u1", "u1@mindbloom.io", "user", "s3cret", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(token, "other")
	assert.Error(t, err)

	expired, err := GenerateToken("u1", "u1@mindbloom.io", "user", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "s3cret")
	assert.Error(t, err)
}
