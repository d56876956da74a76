package domain

import "time"

// User is the identity record. The username is the primary key and doubles
// as the token subject, so a rename invalidates outstanding sessions.
type User struct {
	Username     string
	PasswordHash string  // argon2id, PHC encoded
	Roles        RoleSet // non-empty
	// ClaimedInvite is the invite id this account consumed at registration.
	// Every account references exactly one invite; the bootstrap account
	// claims an invite synthesized during its own registration.
	ClaimedInvite  string
	PictureAssetID string // optional, empty when no avatar was uploaded
	Prefs          string // opaque JSON preferences blob
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
