package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	userID, err := UserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("user-123", secret, -time.Minute)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, secret)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := UserIDFromToken("not.a.token", secret)
	assert.Error(t, err)
}
