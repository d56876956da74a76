package domain

import "time"

// Invite is a single-use capability token gating registration. The id is the
// opaque random token handed to the invitee; claim state is not stored here
// but derived from the users table's claimed_invite references.
type Invite struct {
	ID        string
	CreatedAt time.Time
}

// InviteRow is one entry of the invite listing: the invite joined to the
// username that claimed it, if any.
type InviteRow struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created"`
	ClaimedBy *string   `json:"claimed_by"`
}
