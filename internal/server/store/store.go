package store

import (
	"context"
	"errors"

	"github.com/beamhq/beam/internal/server/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrWriteConflict surfaces when the write-transaction retry budget is
	// exhausted. Anything else the storage layer reports propagates as-is.
	ErrWriteConflict = errors.New("store: write conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and make it obvious
// which operations exist, at the cost of a little indirection.
type Store interface {
	Users() Users
	Invites() Invites
	Assets() Assets
	Media() Media

	ApplyMigrations() error

	// WithTx executes fn within a plain transaction. Reads that need a
	// consistent snapshot use this; it takes no writer permit, so readers
	// never queue behind a pending writer.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// WithWriteTx is the write-serialization controller. It acquires the
	// single global writer permit, begins a transaction, and runs fn. If the
	// storage engine reports a busy/serialization conflict the transaction is
	// rolled back and fn is re-run from scratch on a fresh transaction, a
	// bounded number of times; exhaustion surfaces ErrWriteConflict. fn must
	// therefore be safe to invoke more than once. Rollback is guaranteed on
	// every failure path, including panics out of fn.
	WithWriteTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store. Nested transactions are not supported.
type Tx interface {
	Users() Users
	Invites() Invites
	Assets() Assets
	Media() Media
}

type Users interface {
	// GetUserByUsername returns the current persisted record. Credential
	// checks always re-read through here so stale hashes are never reused.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user. A username collision maps to
	// ErrAlreadyExists via the unique-key constraint.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, username, newHash string) error

	// UpdateUsername renames the account. A collision with an existing
	// username maps to ErrAlreadyExists.
	UpdateUsername(ctx context.Context, oldName, newName string) error

	// UpdatePicture points the user at an uploaded avatar asset.
	UpdatePicture(ctx context.Context, username, assetID string) error

	// DeleteUser removes the account. Terminal; there is no soft delete.
	DeleteUser(ctx context.Context, username string) error

	// IsEmpty reports whether no users exist yet, which is what flips
	// registration between bootstrap and invite-gated.
	IsEmpty(ctx context.Context) (bool, error)
}

type Invites interface {
	// CreateInvite writes a new invite row.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInvite returns an invite by id, ErrNotFound if absent.
	GetInvite(ctx context.Context, id string) (domain.Invite, error)

	// IsClaimed reports whether any user's claimed_invite references id.
	IsClaimed(ctx context.Context, id string) (bool, error)

	// DeleteInvite removes an invite, ErrNotFound if absent.
	DeleteInvite(ctx context.Context, id string) error

	// ListUnclaimed returns invites no user references, created_at ascending.
	ListUnclaimed(ctx context.Context) ([]domain.InviteRow, error)

	// ListClaimed returns invites joined to their claiming user,
	// created_at ascending.
	ListClaimed(ctx context.Context) ([]domain.InviteRow, error)
}

type Assets interface {
	// CreateAsset records an on-disk file.
	CreateAsset(ctx context.Context, a domain.Asset) error

	// GetAssetOfUser resolves a user's avatar asset, ErrNotFound when the
	// user has none.
	GetAssetOfUser(ctx context.Context, username string) (domain.Asset, error)
}

type Media interface {
	// GetLibrary returns a library by id, ErrNotFound if absent.
	GetLibrary(ctx context.Context, id string) (domain.Library, error)

	// CreateLibrary inserts a library.
	CreateLibrary(ctx context.Context, l domain.Library) error

	// GetMediaIDByName looks up a catalog entry by its natural key.
	GetMediaIDByName(ctx context.Context, libraryID, name string) (string, error)

	// CreateMedia blindly inserts a catalog entry.
	CreateMedia(ctx context.Context, m domain.Media) error

	// MarkStreamable records the playable marker for a catalog entry.
	MarkStreamable(ctx context.Context, mediaID string) error
}

// InsertOrGet is the serialize-on-conflict insert-or-get idiom: run lookup,
// return its result if the row exists, otherwise insert and return the new
// identity. The two steps are not one atomic statement, so callers MUST run
// this inside WithWriteTx; concurrent callers racing on the same natural key
// then converge on one surviving row, losers adopting the winner's id.
func InsertOrGet[T any](lookup func() (T, error), insert func() (T, error)) (T, error) {
	got, err := lookup()
	if err == nil {
		return got, nil
	}
	if !errors.Is(err, ErrNotFound) {
		var zero T
		return zero, err
	}
	return insert()
}
