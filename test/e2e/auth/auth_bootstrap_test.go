package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBootstrapFirstAccount verifies the first registration succeeds with
// no invite token and produces the owner account.
func TestBootstrapFirstAccount(t *testing.T) {
	baseURL := setupServer(t)
	c := newClient(baseURL)

	require.False(t, c.adminExists(t), "fresh instance should have no admin")

	require.Equal(t, http.StatusOK, c.register(t, ownerUsername, ownerPassword, ""))
	c.login(t, ownerUsername, ownerPassword)

	me := c.whoami(t)
	require.Equal(t, ownerUsername, me.Username)
	require.Contains(t, me.Roles, "owner")

	require.True(t, c.adminExists(t))
}

// TestBootstrapIgnoresSubmittedToken verifies a token supplied with the
// very first registration is ignored rather than rejected.
func TestBootstrapIgnoresSubmittedToken(t *testing.T) {
	baseURL := setupServer(t)
	c := newClient(baseURL)

	require.Equal(t, http.StatusOK, c.register(t, ownerUsername, ownerPassword, "never-minted-token"))
	c.login(t, ownerUsername, ownerPassword)
	require.Contains(t, c.whoami(t).Roles, "owner")
}

// TestRegistrationGatedAfterBootstrap verifies that once an account
// exists, registration requires a valid unclaimed invite.
func TestRegistrationGatedAfterBootstrap(t *testing.T) {
	baseURL := setupServer(t)
	owner := bootstrapOwner(t, baseURL)

	c := newClient(baseURL)
	require.Equal(t, http.StatusUnauthorized, c.register(t, "alice", "password", ""))
	require.Equal(t, http.StatusUnauthorized, c.register(t, "alice", "password", "bogus-token"))

	invite := owner.mintInvite(t)
	require.Equal(t, http.StatusOK, c.register(t, "alice", "password", invite))
	c.login(t, "alice", "password")

	me := c.whoami(t)
	require.Equal(t, "alice", me.Username)
	require.Contains(t, me.Roles, "user")
	require.NotContains(t, me.Roles, "owner")

	// The invite is burned: it cannot admit a second account.
	require.Equal(t, http.StatusUnauthorized, newClient(baseURL).register(t, "bob", "password", invite))
}
