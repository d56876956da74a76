package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/pkg/cryptox"
	"github.com/beamhq/beam/pkg/slogx"
)

type RegisterService struct {
	Store store.Store
}

// Register creates a new account. Two branches, decided from data read inside
// the same write transaction as the insert:
//
//   - Bootstrap: no users exist yet. Any submitted invite token is ignored, a
//     fresh invite is synthesized and immediately claimed by the new account,
//     and the role set is {owner}.
//   - Gated: at least one user exists. A valid unclaimed invite token is
//     required (ErrNoToken otherwise), and the role set is {user}.
//
// Running the whole decision under the writer permit prevents two concurrent
// registrations from both observing an empty user table and both claiming
// owner, and prevents two registrations from claiming the same invite.
func (s *RegisterService) Register(ctx context.Context, username, password, inviteToken string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	var created domain.User
	err = s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}

		roles := domain.RoleSet{domain.RoleUser}
		claimed := inviteToken

		if empty {
			roles = domain.RoleSet{domain.RoleOwner}
			claimed, err = cryptox.GenerateToken(cryptox.TokenSize256)
			if err != nil {
				return err
			}
			if err := tx.Invites().CreateInvite(ctx, domain.Invite{ID: claimed, CreatedAt: time.Now()}); err != nil {
				return err
			}
		} else {
			if inviteToken == "" {
				return ErrNoToken
			}
			ok, err := isValidUnclaimed(ctx, tx, inviteToken)
			if err != nil {
				return err
			}
			if !ok {
				return ErrNoToken
			}
		}

		created = domain.User{
			Username:      username,
			PasswordHash:  hash,
			Roles:         roles,
			ClaimedInvite: claimed,
		}
		if err := tx.Users().CreateUser(ctx, created); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameNotAvailable
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("registered new user",
		slog.String("username", created.Username),
		slog.Any("roles", created.Roles.Strings()),
	)
	return created, nil
}

// isValidUnclaimed answers whether the token names an existing invite that no
// user has claimed. Invalid is a normal "no", not an error.
func isValidUnclaimed(ctx context.Context, tx store.Tx, token string) (bool, error) {
	if _, err := tx.Invites().GetInvite(ctx, token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	claimed, err := tx.Invites().IsClaimed(ctx, token)
	if err != nil {
		return false, err
	}
	return !claimed, nil
}
