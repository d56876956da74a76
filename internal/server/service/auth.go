package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/beamhq/beam/internal/server/domain"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/pkg/cryptox"
	"github.com/beamhq/beam/pkg/jwtx"
	"github.com/beamhq/beam/pkg/slogx"
)

type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Login verifies the submitted credentials against the current persisted
// record and issues a session token. Unknown usernames and wrong passwords
// collapse to the same ErrInvalidCredentials so the response does not leak
// which half failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed for unknown user", slog.String("username", username))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("login failed password verification", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	return s.Signer.Issue(user.Username, user.Roles.Strings())
}

// AdminExists reports whether any account exists. The bootstrap account is
// always created with the owner role, so a non-empty user table implies an
// owner was provisioned at some point.
func (s *AuthService) AdminExists(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Whoami resolves the acting user's profile summary. The avatar asset is
// optional: a missing asset degrades to a nil pointer rather than failing the
// whole read.
func (s *AuthService) Whoami(ctx context.Context, username string) (domain.User, *domain.Asset, error) {
	var (
		user  domain.User
		asset *domain.Asset
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		user = u

		if a, err := tx.Assets().GetAssetOfUser(ctx, username); err == nil {
			asset = &a
		}
		return nil
	})
	if err != nil {
		return domain.User{}, nil, err
	}
	return user, asset, nil
}
