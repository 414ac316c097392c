package domain

import (
	"strings"
)

// VisitorID scopes likes and favorites. It is the request's client
// address, so visitors behind one NAT share a single slot.
type VisitorID string

// NewVisitorID normalizes a client address into a VisitorID
func NewVisitorID(addr string) VisitorID {
	return VisitorID(strings.TrimSpace(addr))
}

// IsZero reports whether no visitor is identified
func (v VisitorID) IsZero() bool {
	return v == ""
}

func (v VisitorID) String() string {
	return string(v)
}

// ReactionKind selects the like or favorite set
type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionFavorite ReactionKind = "favorite"
)

// Valid reports whether k is a known reaction kind
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionFavorite
}

// ReactionState is the outcome of a toggle or a state lookup
type ReactionState struct {
	Kind   ReactionKind `json:"kind"`
	Active bool         `json:"active"`
	Count  int          `json:"count"`
}

// ArticleReactions summarizes likes and favorites for one visitor
type ArticleReactions struct {
	Likes     int  `json:"likes"`
	Favorites int  `json:"favorites"`
	Liked     bool `json:"liked"`
	Favorited bool `json:"favorited"`
}
