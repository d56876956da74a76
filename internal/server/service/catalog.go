package service

import (
	"context"
	"time"

	"github.com/beamhq/beam/internal/server/domain"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/pkg/idx"
)

// CatalogService owns the media catalog insert path. Library scanners run
// concurrently and frequently discover the same title more than once, so
// every insert goes through the write-serialization controller; deduped kinds
// additionally converge through insert-or-get on the (library, name) key.
type CatalogService struct {
	Store store.Store
}

// AddLibrary registers a new library root.
func (s *CatalogService) AddLibrary(ctx context.Context, name, location string, kind domain.MediaKind) (string, error) {
	if _, err := domain.ParseMediaKind(string(kind)); err != nil {
		return "", err
	}

	lib := domain.Library{
		ID:        idx.New().String(),
		Name:      name,
		Location:  location,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	err := s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		return tx.Media().CreateLibrary(ctx, lib)
	})
	if err != nil {
		return "", err
	}
	return lib.ID, nil
}

// AddMedia inserts a catalog entry and returns its id. The kind picks the
// insertion strategy:
//
//   - movie, show: insert-or-get by (library, name). Concurrent scanners
//     racing on the same title all receive the surviving row's id.
//   - episode: blind insert. Episode names repeat across seasons, so there is
//     no natural key to converge on.
//
// Streamable kinds additionally get their playable marker row; marking is
// idempotent, so the adopt-existing branch is safe to re-mark.
func (s *CatalogService) AddMedia(ctx context.Context, m domain.Media) (string, error) {
	if _, err := domain.ParseMediaKind(string(m.Kind)); err != nil {
		return "", err
	}

	var id string
	err := s.Store.WithWriteTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Media().GetLibrary(ctx, m.LibraryID); err != nil {
			return err
		}

		insert := func() (string, error) {
			rec := m
			rec.ID = idx.New().String()
			if rec.AddedAt.IsZero() {
				rec.AddedAt = time.Now()
			}
			if err := tx.Media().CreateMedia(ctx, rec); err != nil {
				return "", err
			}
			return rec.ID, nil
		}

		var err error
		switch m.Kind {
		case domain.MediaEpisode:
			id, err = insert()
		default:
			id, err = store.InsertOrGet(
				func() (string, error) {
					return tx.Media().GetMediaIDByName(ctx, m.LibraryID, m.Name)
				},
				insert,
			)
		}
		if err != nil {
			return err
		}

		if m.Kind.Streamable() {
			return tx.Media().MarkStreamable(ctx, id)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
