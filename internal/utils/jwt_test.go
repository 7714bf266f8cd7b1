package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("6602abc0ffee00c0ffee0001", "alice", "test-secret", 15*24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "6602abc0ffee00c0ffee0001", claims.ID)
	require.Equal(t, "alice", claims.Username)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken("6602abc0ffee00c0ffee0001", "alice", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "test-secret")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("6602abc0ffee00c0ffee0001", "alice", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("not-a-token", "test-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}
