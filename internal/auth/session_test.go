package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterLoginResolve(t *testing.T) {
	m := NewManager()

	id, token, err := m.Register("alice", "hunter22")
	require.NoError(t, err)
	require.NotZero(t, id)
	require.NotEmpty(t, token)

	gotID, username, ok := m.ResolveSession(token)
	require.True(t, ok)
	require.Equal(t, id, gotID)
	require.Equal(t, "alice", username)

	loginID, loginToken, err := m.Login("Alice", "hunter22")
	require.NoError(t, err)
	require.Equal(t, id, loginID, "usernames are case-insensitive")
	require.NotEqual(t, token, loginToken)
}

func TestRegisterValidation(t *testing.T) {
	m := NewManager()

	_, _, err := m.Register("x", "hunter22")
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, _, err = m.Register("alice", "short")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, _, err = m.Register("alice", "hunter22")
	require.NoError(t, err)
	_, _, err = m.Register("ALICE", "hunter22")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := NewManager()
	_, _, err := m.Register("alice", "hunter22")
	require.NoError(t, err)

	_, _, err = m.Login("alice", "wrongpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = m.Login("nobody", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutAndExpiry(t *testing.T) {
	m := NewManager()
	_, token, err := m.Register("alice", "hunter22")
	require.NoError(t, err)

	m.Logout(token)
	_, _, ok := m.ResolveSession(token)
	require.False(t, ok)

	m.sessionTTL = -time.Second
	_, expired, err := m.Register("bob", "hunter22")
	require.NoError(t, err)
	_, _, ok = m.ResolveSession(expired)
	require.False(t, ok, "expired sessions are rejected")
}
