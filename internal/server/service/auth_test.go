package service

import (
	"context"
	"testing"

	"github.com/beamhq/beam/internal/server/domain"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	signer := newTestSigner(t)
	auth := &AuthService{Store: st, Signer: signer}

	bootstrapOwner(t, st)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		token, err := auth.Login(ctx, "admin", "hunter22")
		require.NoError(t, err)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "admin", claims.Username)
		require.True(t, claims.HasRole("owner"))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "admin", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := auth.Login(ctx, "ghost", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAdminExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	auth := &AuthService{Store: st, Signer: newTestSigner(t)}

	exists, err := auth.AdminExists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	bootstrapOwner(t, st)

	exists, err = auth.AdminExists(ctx)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestWhoami(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	auth := &AuthService{Store: st, Signer: newTestSigner(t)}

	bootstrapOwner(t, st)

	t.Run("without avatar the asset is nil", func(t *testing.T) {
		user, asset, err := auth.Whoami(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, "admin", user.Username)
		require.Nil(t, asset)
	})

	t.Run("with avatar the asset resolves", func(t *testing.T) {
		err := st.WithWriteTx(ctx, func(tx store.Tx) error {
			if err := tx.Assets().CreateAsset(ctx, domain.Asset{
				ID:        "asset-1",
				LocalPath: "asset-1.png",
				FileExt:   "png",
			}); err != nil {
				return err
			}
			return tx.Users().UpdatePicture(ctx, "admin", "asset-1")
		})
		require.NoError(t, err)

		_, asset, err := auth.Whoami(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, asset)
		require.Equal(t, "asset-1.png", asset.LocalPath)
	})

	t.Run("unknown user fails", func(t *testing.T) {
		_, _, err := auth.Whoami(ctx, "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
