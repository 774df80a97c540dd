package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := issueSessionToken("alice", secret, time.Hour)
	require.NoError(t, err)

	subject, err := parseSessionSubject(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := issueSessionToken("alice", []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = parseSessionSubject(token, []byte("other"))
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	secret := []byte("secret")

	token, err := issueSessionToken("alice", secret, -time.Minute)
	require.NoError(t, err)

	_, err = parseSessionSubject(token, secret)
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := parseSessionSubject("garbage", []byte("secret"))
	assert.Error(t, err)
}
