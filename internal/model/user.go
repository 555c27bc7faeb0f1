package model

import "time"

// User represents a visitor identified by an opaque session token.  Users
// are created lazily the first time a request bearing an unseen token
// performs a write; plain reads never materialize a row.
type User struct {
	ID        string    `json:"id"`        // users.id (uuid)
	SessionID string    `json:"sessionId"` // users.session_id, unique opaque token
	CreatedAt time.Time `json:"createdAt"` // users.created_at
	UpdatedAt time.Time `json:"updatedAt"` // users.updated_at
}

// UserStats summarizes a user's reactions.  TotalReactions counts likes
// and dislikes combined; the liked/disliked fields partition it.
type UserStats struct {
	TotalReactions int64 `json:"totalReactions"`
	LikedMovies    int64 `json:"likedMovies"`
	DislikedMovies int64 `json:"dislikedMovies"`
}
