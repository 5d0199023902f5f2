package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	token, err := sessions.Issue("u-1", "MODERATOR")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "MODERATOR", claims.Role)
}

func TestSessionExpired(t *testing.T) {
	sessions := NewSessions("test-secret", -time.Minute)

	token, err := sessions.Issue("u-1", "USER")
	require.NoError(t, err)

	_, err = sessions.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredSession)
}

func TestSessionWrongSecret(t *testing.T) {
	token, err := NewSessions("secret-a", time.Hour).Issue("u-1", "USER")
	require.NoError(t, err)

	_, err = NewSessions("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionGarbageToken(t *testing.T) {
	_, err := NewSessions("test-secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter22!", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22!", hash)

	assert.NoError(t, VerifyPassword("hunter22!", hash))
	assert.ErrorIs(t, VerifyPassword("wrong", hash), ErrInvalidPassword)
	assert.ErrorIs(t, VerifyPassword("", hash), ErrInvalidPassword)
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("", 4)
	assert.Error(t, err)
}
