package model

import (
	"bytes"
	"fmt"
)

// Reaction is the three-state rating a user can hold for a movie.  The
// storage layer never sees this type: an absent likes row means
// ReactionNeutral, and a present row carries a plain boolean.  Conversion
// between the two representations happens only at the persistence edge,
// so every other layer works with an explicit enumeration instead of a
// nullable boolean.
//
// On the wire a Reaction serializes as JSON null / true / false to stay
// compatible with the isLiked field consumed by clients.
type Reaction int

const (
	ReactionNeutral Reaction = iota // no likes row
	ReactionLiked                   // likes row with is_liked = 1
	ReactionDisliked                // likes row with is_liked = 0
)

// Next advances one step in the fixed cycle
// neutral -> liked -> disliked -> neutral.
func (r Reaction) Next() Reaction {
	switch r {
	case ReactionNeutral:
		return ReactionLiked
	case ReactionLiked:
		return ReactionDisliked
	default:
		return ReactionNeutral
	}
}

// Stored maps the enumeration to its storage representation.  present
// reports whether a likes row should exist at all; isLiked is only
// meaningful when present is true.
func (r Reaction) Stored() (isLiked bool, present bool) {
	switch r {
	case ReactionLiked:
		return true, true
	case ReactionDisliked:
		return false, true
	default:
		return false, false
	}
}

// ReactionFromStored converts a row lookup result back into the
// enumeration.  found=false means no row exists for the pair.
func ReactionFromStored(found, isLiked bool) Reaction {
	if !found {
		return ReactionNeutral
	}
	if isLiked {
		return ReactionLiked
	}
	return ReactionDisliked
}

func (r Reaction) String() string {
	switch r {
	case ReactionLiked:
		return "liked"
	case ReactionDisliked:
		return "disliked"
	default:
		return "neutral"
	}
}

// MarshalJSON emits null for neutral, true for liked, false for disliked.
func (r Reaction) MarshalJSON() ([]byte, error) {
	switch r {
	case ReactionLiked:
		return []byte("true"), nil
	case ReactionDisliked:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, true or false.
func (r *Reaction) UnmarshalJSON(b []byte) error {
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = ReactionNeutral
	case bytes.Equal(b, []byte("true")):
		*r = ReactionLiked
	case bytes.Equal(b, []byte("false")):
		*r = ReactionDisliked
	default:
		return fmt.Errorf("invalid reaction value: %s", b)
	}
	return nil
}
