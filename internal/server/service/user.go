package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/pkg/cryptox"
	"github.com/beamhq/beam/pkg/idx"
	"github.com/beamhq/beam/pkg/slogx"
)

type UserService struct {
	Store store.Store

	// AssetsDir is where uploaded avatar files land on disk.
	AssetsDir string
}

// ChangePassword re-verifies the current password against the persisted
// record before writing the new hash. A wrong current password fails with
// ErrInvalidCredentials and leaves the account untouched.
func (s *UserService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if err := cryptox.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
			return ErrInvalidCredentials
		}
		return tx.Users().UpdatePasswordHash(ctx, username, newHash)
	})
}

// ChangeUsername renames the account. The target name is checked inside the
// write transaction, and the unique-key constraint backstops the check.
func (s *UserService) ChangeUsername(ctx context.Context, username, newUsername string) error {
	return s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByUsername(ctx, newUsername)
		if err == nil {
			return ErrUsernameNotAvailable
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().UpdateUsername(ctx, username, newUsername); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameNotAvailable
			}
			return err
		}
		return nil
	})
}

// DeleteSelf removes the acting user's account after re-verifying their
// password. The claimed invite row goes with the account so the token cannot
// be reused by a later registration. Terminal; there is no soft delete.
func (s *UserService) DeleteSelf(ctx context.Context, username, password string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
			return ErrInvalidCredentials
		}

		if err := tx.Users().DeleteUser(ctx, username); err != nil {
			return err
		}
		if err := tx.Invites().DeleteInvite(ctx, user.ClaimedInvite); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("deleted user account", slog.String("username", username))
	return nil
}

// SetAvatar stores an uploaded avatar image and points the user's profile at
// it. Only JPEG and PNG payloads are accepted; anything else fails with
// ErrUnsupportedFile before touching disk.
func (s *UserService) SetAvatar(ctx context.Context, username, contentType string, data []byte) error {
	var ext string
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	default:
		return ErrUnsupportedFile
	}

	id := idx.New().String()
	filename := fmt.Sprintf("%s.%s", id, ext)

	if err := os.MkdirAll(s.AssetsDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := os.WriteFile(filepath.Join(s.AssetsDir, filename), data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		asset := domain.Asset{
			ID:        id,
			LocalPath: filename,
			FileExt:   ext,
			CreatedAt: time.Now(),
		}
		if err := tx.Assets().CreateAsset(ctx, asset); err != nil {
			return err
		}
		return tx.Users().UpdatePicture(ctx, username, asset.ID)
	})
}
