package domain

import (
	"errors"
	"time"
)

// MediaKind is the closed set of catalog entry kinds. The kind decides the
// insertion strategy: movies and episodes are playable and get a streamable
// marker row, shows are purely structural.
type MediaKind string

const (
	MediaMovie   MediaKind = "movie"
	MediaShow    MediaKind = "show"
	MediaEpisode MediaKind = "episode"
)

// ErrUnknownMediaKind reports a kind outside the closed set.
var ErrUnknownMediaKind = errors.New("domain: unknown media kind")

// ParseMediaKind validates a raw kind tag.
func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case MediaMovie, MediaShow, MediaEpisode:
		return MediaKind(s), nil
	}
	return "", ErrUnknownMediaKind
}

// Streamable reports whether entries of this kind get a streamable marker.
func (k MediaKind) Streamable() bool {
	return k == MediaMovie || k == MediaEpisode
}

// Library groups catalog entries under one on-disk location.
type Library struct {
	ID        string
	Name      string
	Location  string
	Kind      MediaKind
	CreatedAt time.Time
}

// Media is one catalog entry. (LibraryID, Name) is the natural key the
// scanner converges on when multiple workers discover the same title.
type Media struct {
	ID        string
	LibraryID string
	Name      string
	Kind      MediaKind
	AddedAt   time.Time
}
