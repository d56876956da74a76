package sqlite

import (
	"database/sql"

	"github.com/beamhq/beam/internal/server/store"
)

// txStore scopes the repos to a single transaction. The outer Store owns
// commit/rollback; handing repos only keeps nested transactions impossible
// by construction.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.Users     { return &usersRepo{db: t.tx} }
func (t *txStore) Invites() store.Invites { return &invitesRepo{db: t.tx} }
func (t *txStore) Assets() store.Assets   { return &assetsRepo{db: t.tx} }
func (t *txStore) Media() store.Media     { return &mediaRepo{db: t.tx} }
