package domain

import "time"

// Asset is an on-disk file (currently only user avatars) tracked by the
// store. LocalPath is relative to the configured assets directory.
type Asset struct {
	ID        string
	LocalPath string
	FileExt   string
	CreatedAt time.Time
}
