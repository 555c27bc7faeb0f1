// Package queue defines the reaction event payload exchanged over the
// message broker, its best-effort publisher and the background consumer.
package queue

// ReactionRecordedEvent is published after a reaction is persisted.  It
// carries enough for downstream consumers to log or feed analytics
// without querying the primary database.
type ReactionRecordedEvent struct {
	LikeID     string `json:"like_id"`
	UserID     string `json:"user_id"`
	MovieID    int64  `json:"movie_id"`
	MovieTitle string `json:"movie_title,omitempty"`
	IsLiked    bool   `json:"is_liked"`
	RecordedAt string `json:"recorded_at"`
}
