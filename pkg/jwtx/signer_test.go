package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewSigner(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := NewSigner([]byte("too short"), "beam", time.Hour)
		require.ErrorIs(t, err, ErrWeakSecret)
	})

	t.Run("defaults the ttl", func(t *testing.T) {
		s, err := NewSigner(testSecret(), "beam", 0)
		require.NoError(t, err)
		require.NotNil(t, s)
	})
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewSigner(testSecret(), "beam", time.Hour)
	require.NoError(t, err)

	token, err := s.Issue("alice", []string{"owner"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "beam", claims.Issuer)
	require.True(t, claims.HasRole("owner"))
	require.False(t, claims.HasRole("user"))
}

func TestVerifyRejections(t *testing.T) {
	t.Parallel()

	s, err := NewSigner(testSecret(), "beam", time.Hour)
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := s.Verify("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := s.Issue("alice", []string{"user"})
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		parts[1] = parts[1][:len(parts[1])-2] + "xx"

		_, err = s.Verify(strings.Join(parts, "."))
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewSigner([]byte("ffffffffffffffffffffffffffffffff"), "beam", time.Hour)
		require.NoError(t, err)

		token, err := other.Issue("alice", []string{"user"})
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidSig)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := NewSigner(testSecret(), "beam", -time.Hour)
		require.NoError(t, err)
		// Negative ttl is replaced by the default at construction, so build
		// the claims by hand instead.
		expired.ttl = -time.Hour

		token, err := expired.Issue("alice", []string{"user"})
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestClaimsValidateExpiry(t *testing.T) {
	t.Parallel()

	t.Run("valid window", func(t *testing.T) {
		c := NewClaims("alice", []string{"user"}, time.Hour, "beam", time.Now().UTC())
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired", func(t *testing.T) {
		c := NewClaims("alice", []string{"user"}, time.Minute, "beam", time.Now().UTC().Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := NewClaims("alice", []string{"user"}, time.Hour, "beam", time.Now().UTC().Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})
}
