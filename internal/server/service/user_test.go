package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/beamhq/beam/internal/server/store"
	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st}
	auth := &AuthService{Store: st, Signer: newTestSigner(t)}

	bootstrapOwner(t, st)

	t.Run("wrong current password leaves the account intact", func(t *testing.T) {
		err := users.ChangePassword(ctx, "admin", "wrong", "new-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = auth.Login(ctx, "admin", "hunter22")
		require.NoError(t, err)
	})

	t.Run("correct current password rotates the credential", func(t *testing.T) {
		require.NoError(t, users.ChangePassword(ctx, "admin", "hunter22", "new-password"))

		_, err := auth.Login(ctx, "admin", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = auth.Login(ctx, "admin", "new-password")
		require.NoError(t, err)
	})
}

func TestChangeUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st}
	reg := &RegisterService{Store: st}
	inv := &InviteService{Store: st}

	bootstrapOwner(t, st)

	token, err := inv.MintInvite(ctx, "admin")
	require.NoError(t, err)
	_, err = reg.Register(ctx, "alice", "password", token)
	require.NoError(t, err)

	t.Run("taken name is rejected", func(t *testing.T) {
		require.ErrorIs(t, users.ChangeUsername(ctx, "alice", "admin"), ErrUsernameNotAvailable)
	})

	t.Run("rename moves the account", func(t *testing.T) {
		require.NoError(t, users.ChangeUsername(ctx, "alice", "alicia"))

		_, err := st.Users().GetUserByUsername(ctx, "alice")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Users().GetUserByUsername(ctx, "alicia")
		require.NoError(t, err)
	})
}

func TestDeleteSelf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st}
	reg := &RegisterService{Store: st}
	inv := &InviteService{Store: st}

	bootstrapOwner(t, st)

	token, err := inv.MintInvite(ctx, "admin")
	require.NoError(t, err)
	alice, err := reg.Register(ctx, "alice", "password", token)
	require.NoError(t, err)

	t.Run("wrong password leaves the account intact", func(t *testing.T) {
		require.ErrorIs(t, users.DeleteSelf(ctx, "alice", "wrong"), ErrInvalidCredentials)

		_, err := st.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
	})

	t.Run("delete is terminal and burns the invite", func(t *testing.T) {
		require.NoError(t, users.DeleteSelf(ctx, "alice", "password"))

		_, err := st.Users().GetUserByUsername(ctx, "alice")
		require.ErrorIs(t, err, store.ErrNotFound)

		// The claimed invite is gone with the account: it cannot be used to
		// register again.
		_, err = reg.Register(ctx, "alice2", "password", alice.ClaimedInvite)
		require.ErrorIs(t, err, ErrNoToken)
	})
}

func TestSetAvatar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	assetsDir := t.TempDir()
	users := &UserService{Store: st, AssetsDir: assetsDir}
	auth := &AuthService{Store: st, Signer: newTestSigner(t)}

	bootstrapOwner(t, st)

	// Tiny valid-enough payloads; content sniffing happens on the header.
	pngData := []byte("\x89PNG\r\n\x1a\nrest-of-image")

	t.Run("unsupported content type", func(t *testing.T) {
		err := users.SetAvatar(ctx, "admin", "image/gif", []byte("GIF89a"))
		require.ErrorIs(t, err, ErrUnsupportedFile)
	})

	t.Run("png upload lands on disk and in the profile", func(t *testing.T) {
		require.NoError(t, users.SetAvatar(ctx, "admin", "image/png", pngData))

		_, asset, err := auth.Whoami(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, asset)
		require.Equal(t, "png", asset.FileExt)

		stored, err := os.ReadFile(filepath.Join(assetsDir, asset.LocalPath))
		require.NoError(t, err)
		require.Equal(t, pngData, stored)
	})

	t.Run("jpeg alias is accepted", func(t *testing.T) {
		require.NoError(t, users.SetAvatar(ctx, "admin", "image/jpg", []byte("\xff\xd8\xffjpeg")))
	})
}
