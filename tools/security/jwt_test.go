package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	opts := Options{Secret: []byte("test-secret"), TTL: time.Hour}

	token, exp, err := Generate(opts, "u1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := Verify(opts, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "u1", claims.Subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := Generate(Options{Secret: []byte("secret-a"), TTL: time.Hour}, "u1", "alice")
	require.NoError(t, err)

	_, err = Verify(Options{Secret: []byte("secret-b")}, token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, _, err := Generate(Options{Secret: []byte("secret"), TTL: -time.Minute}, "u1", "alice")
	require.NoError(t, err)

	_, err = Verify(Options{Secret: []byte("secret")}, token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := Verify(Options{Secret: []byte("secret")}, "not.a.token")
	assert.Error(t, err)
}
