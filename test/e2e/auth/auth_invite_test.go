package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type inviteRow struct {
	ID        string    `json:"id"`
	Created   time.Time `json:"created"`
	ClaimedBy *string   `json:"claimed_by"`
}

// TestInviteLifecycle exercises minting, listing and deleting invites as
// the owner.
func TestInviteLifecycle(t *testing.T) {
	baseURL := setupServer(t)
	owner := bootstrapOwner(t, baseURL)

	fresh := owner.mintInvite(t)

	var rows []inviteRow
	resp := owner.do(t, http.MethodGet, "/api/v1/auth/invites", nil, &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The bootstrap invite (claimed by the owner) and the fresh one.
	require.Len(t, rows, 2)

	byID := map[string]inviteRow{}
	for _, row := range rows {
		byID[row.ID] = row
	}
	require.Contains(t, byID, fresh)
	require.Nil(t, byID[fresh].ClaimedBy)

	var claimed int
	for _, row := range rows {
		if row.ClaimedBy != nil {
			claimed++
			require.Equal(t, ownerUsername, *row.ClaimedBy)
		}
	}
	require.Equal(t, 1, claimed)

	t.Run("unclaimed invites sort before claimed ones", func(t *testing.T) {
		require.Nil(t, rows[0].ClaimedBy)
		require.NotNil(t, rows[len(rows)-1].ClaimedBy)
	})

	t.Run("delete revokes the invite", func(t *testing.T) {
		resp := owner.do(t, http.MethodDelete, "/api/v1/auth/token/"+fresh, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.Equal(t, http.StatusUnauthorized,
			newClient(baseURL).register(t, "alice", "password", fresh))
	})

	t.Run("deleting a claimed invite is refused", func(t *testing.T) {
		invite := owner.mintInvite(t)
		require.Equal(t, http.StatusOK, newClient(baseURL).register(t, "bob", "password", invite))

		resp := owner.do(t, http.MethodDelete, "/api/v1/auth/token/"+invite, nil, nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("deleting an unknown invite 404s", func(t *testing.T) {
		resp := owner.do(t, http.MethodDelete, "/api/v1/auth/token/never-minted", nil, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

// TestInviteEndpointsRequireOwnerRole verifies invite administration is
// closed to anonymous callers and to plain users.
func TestInviteEndpointsRequireOwnerRole(t *testing.T) {
	baseURL := setupServer(t)
	owner := bootstrapOwner(t, baseURL)

	invite := owner.mintInvite(t)
	user := newClient(baseURL)
	require.Equal(t, http.StatusOK, user.register(t, "alice", "password", invite))
	user.login(t, "alice", "password")

	anon := newClient(baseURL)

	probes := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/auth/invites"},
		{http.MethodPost, "/api/v1/auth/new_invite"},
		{http.MethodDelete, "/api/v1/auth/token/some-token"},
	}

	for _, probe := range probes {
		resp := anon.do(t, probe.method, probe.path, nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "anon %s %s", probe.method, probe.path)

		resp = user.do(t, probe.method, probe.path, nil, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode, "user %s %s", probe.method, probe.path)
	}
}
