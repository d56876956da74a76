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

type InviteService struct {
	Store store.Store
}

// MintInvite creates a fresh single-use invite and returns its token.
func (s *InviteService) MintInvite(ctx context.Context, createdBy string) (string, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}
	err = s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		return tx.Invites().CreateInvite(ctx, domain.Invite{
			ID:        token,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return "", err
	}

	log.Info("minted invite", slog.String("created_by", createdBy))
	return token, nil
}

// ListInvites returns every invite: the unclaimed set first, then the claimed
// set joined to the claiming user. Each group is ordered by creation time
// ascending; ordering across the two groups is not guaranteed.
func (s *InviteService) ListInvites(ctx context.Context) ([]domain.InviteRow, error) {
	var rows []domain.InviteRow
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		unclaimed, err := tx.Invites().ListUnclaimed(ctx)
		if err != nil {
			return err
		}
		claimed, err := tx.Invites().ListClaimed(ctx)
		if err != nil {
			return err
		}
		rows = append(unclaimed, claimed...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteInvite removes an unclaimed invite. Absent invites fail with
// ErrInviteNotFound; claimed invites are part of their user's identity record
// and fail with ErrInviteClaimed. The claimed check runs inside the write
// transaction so a concurrent registration cannot claim the invite between
// check and delete.
func (s *InviteService) DeleteInvite(ctx context.Context, token string) error {
	return s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		claimed, err := tx.Invites().IsClaimed(ctx, token)
		if err != nil {
			return err
		}
		if claimed {
			return ErrInviteClaimed
		}
		if err := tx.Invites().DeleteInvite(ctx, token); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteNotFound
			}
			return err
		}
		return nil
	})
}
