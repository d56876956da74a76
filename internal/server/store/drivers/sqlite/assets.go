package sqlite

import (
	"context"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
)

type assetsRepo struct {
	db dbtx
}

func (r *assetsRepo) CreateAsset(ctx context.Context, a domain.Asset) error {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (id, local_path, file_ext, created_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.LocalPath, a.FileExt, toMillis(createdAt))
	return mapConstraint(err)
}

func (r *assetsRepo) GetAssetOfUser(ctx context.Context, username string) (domain.Asset, error) {
	var (
		a         domain.Asset
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT a.id, a.local_path, a.file_ext, a.created_at
		FROM assets a
		JOIN users u ON u.picture_asset_id = a.id
		WHERE u.username = ?`, username).
		Scan(&a.ID, &a.LocalPath, &a.FileExt, &createdAt)
	if err != nil {
		return domain.Asset{}, mapNotFound(err)
	}
	a.CreatedAt = fromMillis(createdAt)
	return a, nil
}
