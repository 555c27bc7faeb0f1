package model

import "time"

// Genre is a single catalog genre as delivered by the external movie API.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is a local mirror of a catalog record.  Rows are upserted whenever
// a client submits movie metadata alongside a reaction, so the likes table
// always has a satisfiable foreign key.  The catalog stays the source of
// truth for movie facts; this table only caches them.
//
// The json tags follow the snake_case shape of the catalog payload so the
// struct binds directly to the movieData object clients send.
type Movie struct {
	ID          int64     `json:"id"`           // movies.id (catalog-assigned)
	Title       string    `json:"title"`        // movies.title
	Overview    string    `json:"overview"`     // movies.overview
	PosterPath  string    `json:"poster_path"`  // movies.poster_path
	ReleaseDate string    `json:"release_date"` // movies.release_date (YYYY-MM-DD)
	VoteAverage float64   `json:"vote_average"` // movies.vote_average
	VoteCount   int64     `json:"vote_count"`   // movies.vote_count
	Genres      []Genre   `json:"genres"`       // movies.genres (stored as JSON text)
	CreatedAt   time.Time `json:"createdAt"`    // movies.created_at
	UpdatedAt   time.Time `json:"updatedAt"`    // movies.updated_at
}

// MovieStats partitions the reactions recorded for one movie.
type MovieStats struct {
	TotalInteractions int64 `json:"totalInteractions"`
	Likes             int64 `json:"likes"`
	Dislikes          int64 `json:"dislikes"`
}

// RankedMovie is a movie together with its reaction counts, used by the
// most-liked listing.
type RankedMovie struct {
	Movie
	LikeCount    int64 `json:"likeCount"`
	DislikeCount int64 `json:"dislikeCount"`
}

// RatedMovie is a movie annotated with the moment the user rated it,
// as returned by the liked-movies and disliked-movies listings.
type RatedMovie struct {
	Movie
	RatedAt time.Time `json:"ratedAt"`
}

// GenreCount is one entry of a genre frequency tally, ordered by
// descending count.
type GenreCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
