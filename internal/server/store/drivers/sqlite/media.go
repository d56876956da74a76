package sqlite

import (
	"context"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
)

type mediaRepo struct {
	db dbtx
}

func (r *mediaRepo) GetLibrary(ctx context.Context, id string) (domain.Library, error) {
	var (
		l         domain.Library
		kind      string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, location, kind, created_at FROM libraries WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Location, &kind, &createdAt)
	if err != nil {
		return domain.Library{}, mapNotFound(err)
	}
	l.Kind, err = domain.ParseMediaKind(kind)
	if err != nil {
		return domain.Library{}, err
	}
	l.CreatedAt = fromMillis(createdAt)
	return l, nil
}

func (r *mediaRepo) CreateLibrary(ctx context.Context, l domain.Library) error {
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO libraries (id, name, location, kind, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Location, string(l.Kind), toMillis(createdAt))
	return mapConstraint(err)
}

func (r *mediaRepo) GetMediaIDByName(ctx context.Context, libraryID, name string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM media WHERE library_id = ? AND name = ?`, libraryID, name).
		Scan(&id)
	if err != nil {
		return "", mapNotFound(err)
	}
	return id, nil
}

func (r *mediaRepo) CreateMedia(ctx context.Context, m domain.Media) error {
	addedAt := m.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO media (id, library_id, name, kind, added_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.LibraryID, m.Name, string(m.Kind), toMillis(addedAt))
	return mapConstraint(err)
}

func (r *mediaRepo) MarkStreamable(ctx context.Context, mediaID string) error {
	// Idempotent: re-marking an already streamable entry is a no-op.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO media_streamable (media_id) VALUES (?) ON CONFLICT (media_id) DO NOTHING`,
		mediaID)
	return err
}
