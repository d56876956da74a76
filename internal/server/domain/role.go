package domain

import (
	"errors"
	"slices"
)

// Role is a closed enumeration of capability tags. Keeping it a distinct type
// with a parse step means a new role cannot be introduced by typo.
type Role string

const (
	// RoleOwner is granted to the bootstrap account and carries invite
	// management rights.
	RoleOwner Role = "owner"

	// RoleUser is the default role for invite-gated and forward-auth accounts.
	RoleUser Role = "user"
)

// ErrUnknownRole reports a role tag outside the closed set.
var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a raw tag against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleUser:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// RoleSet is a non-empty set of role tags attached to a user.
type RoleSet []Role

// Has is the capability predicate every authorization check goes through.
func (rs RoleSet) Has(r Role) bool {
	return slices.Contains(rs, r)
}

// Strings returns the raw tags, for storage and token claims.
func (rs RoleSet) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings parses raw tags, silently dropping unknown ones. Stored
// role columns only ever contain parsed tags, so a drop here means the closed
// set shrank between releases.
func RolesFromStrings(tags []string) RoleSet {
	out := make(RoleSet, 0, len(tags))
	for _, tag := range tags {
		if r, err := ParseRole(tag); err == nil {
			out = append(out, r)
		}
	}
	return out
}
