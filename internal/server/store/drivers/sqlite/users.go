package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT username, password_hash, roles, claimed_invite, picture_asset_id, prefs, created_at, updated_at
		FROM users WHERE username = ?`, username)

	var (
		u         domain.User
		roles     string
		picture   sql.NullString
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&u.Username, &u.PasswordHash, &roles, &u.ClaimedInvite, &picture, &u.Prefs, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Roles = domain.RolesFromStrings(strings.Fields(roles))
	u.PictureAssetID = mapNullString(picture)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := toMillis(time.Now())
	prefs := u.Prefs
	if prefs == "" {
		prefs = "{}"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, roles, claimed_invite, picture_asset_id, prefs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username,
		u.PasswordHash,
		strings.Join(u.Roles.Strings(), " "),
		u.ClaimedInvite,
		mapStringNull(u.PictureAssetID),
		prefs,
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, username, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE username = ?`,
		newHash, toMillis(time.Now()), username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateUsername(ctx context.Context, oldName, newName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, updated_at = ? WHERE username = ?`,
		newName, toMillis(time.Now()), oldName)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *usersRepo) UpdatePicture(ctx context.Context, username, assetID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET picture_asset_id = ?, updated_at = ? WHERE username = ?`,
		mapStringNull(assetID), toMillis(time.Now()), username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
