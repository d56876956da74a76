package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/pkg/cryptox"
	"github.com/beamhq/beam/pkg/jwtx"
	"github.com/beamhq/beam/pkg/slogx"
)

// ForwardAuthService bridges identities asserted by a trusted reverse proxy.
// The proxy has already authenticated the user; this path never checks a
// password.
type ForwardAuthService struct {
	Store   store.Store
	Signer  *jwtx.Signer
	Enabled bool
}

// Authenticate resolves the proxy-asserted username into a session token,
// provisioning the account on first sight. The existing-user branch is
// read-only; the creation branch runs under the same write-transaction
// discipline as registration, so it is idempotent under concurrent first
// requests for the same username.
func (s *ForwardAuthService) Authenticate(ctx context.Context, username string) (string, error) {
	if !s.Enabled {
		return "", ErrForwardAuthDisabled
	}

	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		return s.Signer.Issue(user.Username, user.Roles.Strings())
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	// Random high-entropy password, never exposed: this identity path only
	// ever authenticates via the trusted header.
	password, err := cryptox.GeneratePassword()
	if err != nil {
		return "", err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", err
	}

	var created domain.User
	err = s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		// Re-read inside the transaction: a concurrent first request may have
		// already provisioned the account.
		if existing, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			created = existing
			return nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// Proxy-provisioned accounts are always plain users; bootstrap owner
		// creation only happens through registration.
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		invite := domain.Invite{ID: token, CreatedAt: time.Now()}
		if err := tx.Invites().CreateInvite(ctx, invite); err != nil {
			return err
		}

		created = domain.User{
			Username:      username,
			PasswordHash:  hash,
			Roles:         domain.RoleSet{domain.RoleUser},
			ClaimedInvite: invite.ID,
		}
		return tx.Users().CreateUser(ctx, created)
	})
	if err != nil {
		return "", err
	}

	log.Info("provisioned forward-auth user",
		slog.String("username", created.Username),
		slog.Any("roles", created.Roles.Strings()),
	)
	return s.Signer.Issue(created.Username, created.Roles.Strings())
}
