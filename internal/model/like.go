package model

import "time"

// LikeEdge is the rating relationship between a user and a movie.  At most
// one edge exists per (user, movie) pair; the edge's absence encodes the
// neutral state, so IsLiked is a plain boolean and never tri-state.
// CreatedAt records the first reaction for the pair and survives upserts
// that flip IsLiked; UpdatedAt is bumped on every upsert.
type LikeEdge struct {
	ID        string    `json:"id"`        // likes.id (uuid)
	UserID    string    `json:"userId"`    // likes.user_id, references users.id
	MovieID   int64     `json:"movieId"`   // likes.movie_id, references movies.id
	IsLiked   bool      `json:"isLiked"`   // true like, false dislike
	CreatedAt time.Time `json:"createdAt"` // likes.created_at
	UpdatedAt time.Time `json:"updatedAt"` // likes.updated_at
}

// UserLike is an edge joined with display fields of the rated movie, as
// returned by the per-user likes listing.
type UserLike struct {
	LikeEdge
	Title       string  `json:"title"`
	PosterPath  string  `json:"posterPath"`
	ReleaseDate string  `json:"releaseDate"`
	VoteAverage float64 `json:"voteAverage"`
}

// GlobalStats aggregates every edge in the store.
type GlobalStats struct {
	TotalInteractions int64 `json:"totalInteractions"`
	TotalLikes        int64 `json:"totalLikes"`
	TotalDislikes     int64 `json:"totalDislikes"`
	UniqueUsers       int64 `json:"uniqueUsers"`
	UniqueMovies      int64 `json:"uniqueMovies"`
}
