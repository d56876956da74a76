package sqlite

import (
	"context"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	createdAt := inv.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (id, created_at) VALUES (?, ?)`,
		inv.ID, toMillis(createdAt))
	return mapConstraint(err)
}

func (r *invitesRepo) GetInvite(ctx context.Context, id string) (domain.Invite, error) {
	var (
		inv       domain.Invite
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM invites WHERE id = ?`, id).
		Scan(&inv.ID, &createdAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.CreatedAt = fromMillis(createdAt)
	return inv, nil
}

func (r *invitesRepo) IsClaimed(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE claimed_invite = ?`, id).
		Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *invitesRepo) DeleteInvite(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *invitesRepo) ListUnclaimed(ctx context.Context) ([]domain.InviteRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.created_at
		FROM invites i
		LEFT JOIN users u ON u.claimed_invite = i.id
		WHERE u.username IS NULL
		ORDER BY i.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.InviteRow{}
	for rows.Next() {
		var (
			row       domain.InviteRow
			createdAt int64
		)
		if err := rows.Scan(&row.ID, &createdAt); err != nil {
			return nil, err
		}
		row.CreatedAt = fromMillis(createdAt)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *invitesRepo) ListClaimed(ctx context.Context) ([]domain.InviteRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.created_at, u.username
		FROM invites i
		JOIN users u ON u.claimed_invite = i.id
		ORDER BY i.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.InviteRow{}
	for rows.Next() {
		var (
			row       domain.InviteRow
			createdAt int64
			claimedBy string
		)
		if err := rows.Scan(&row.ID, &createdAt, &claimedBy); err != nil {
			return nil, err
		}
		row.CreatedAt = fromMillis(createdAt)
		row.ClaimedBy = &claimedBy
		out = append(out, row)
	}
	return out, rows.Err()
}
