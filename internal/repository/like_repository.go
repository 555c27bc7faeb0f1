package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/netflim/movie-reactions/internal/model"
)

// LikeRepo provides access to the likes table.  The table holds at most
// one row per (user_id, movie_id) pair, enforced by a UNIQUE constraint;
// a pair with no row is in the neutral state.
type LikeRepo struct {
	db *sql.DB
}

// NewLikeRepo returns a LikeRepo bound to the given database.
func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{db: db} }

// Upsert records a reaction for the pair.  If no edge exists one is
// inserted with fresh timestamps; otherwise is_liked is replaced and
// updated_at bumped while created_at keeps its original value.  The write
// is last-wins: the caller decides which boolean belongs next in the
// cycle, the repository only persists it.  The resulting row is returned.
func (r *LikeRepo) Upsert(ctx context.Context, userID string, movieID int64, isLiked bool) (model.LikeEdge, error) {
	now := nowMillis()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO likes (id, user_id, movie_id, is_liked, created_at, updated_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(user_id, movie_id) DO UPDATE SET
			is_liked   = excluded.is_liked,
			updated_at = excluded.updated_at`,
		uuid.NewString(), userID, movieID, boolToInt(isLiked), now, now)
	if err != nil {
		return model.LikeEdge{}, err
	}
	return r.Get(ctx, userID, movieID)
}

// Get fetches the edge for a pair.  Returns ErrLikeNotFound when the pair
// is neutral.
func (r *LikeRepo) Get(ctx context.Context, userID string, movieID int64) (model.LikeEdge, error) {
	var (
		e                    model.LikeEdge
		liked                int
		createdMs, updatedMs int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, movie_id, is_liked, created_at, updated_at FROM likes WHERE user_id = ? AND movie_id = ?",
		userID, movieID).
		Scan(&e.ID, &e.UserID, &e.MovieID, &liked, &createdMs, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LikeEdge{}, ErrLikeNotFound
	}
	if err != nil {
		return model.LikeEdge{}, err
	}
	e.IsLiked = liked != 0
	e.CreatedAt = fromMillis(createdMs)
	e.UpdatedAt = fromMillis(updatedMs)
	return e, nil
}

// Delete removes the edge for a pair and reports whether a row existed.
// Deleting a neutral pair is not an error, so the call is idempotent.
func (r *LikeRepo) Delete(ctx context.Context, userID string, movieID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM likes WHERE user_id = ? AND movie_id = ?", userID, movieID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UserLikes lists a user's edges joined with movie display fields, most
// recently updated first.
func (r *LikeRepo) UserLikes(ctx context.Context, userID string, limit, offset int) ([]model.UserLike, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.user_id, l.movie_id, l.is_liked, l.created_at, l.updated_at,
		       m.title, m.poster_path, m.release_date, m.vote_average
		FROM likes l
		INNER JOIN movies m ON l.movie_id = m.id
		WHERE l.user_id = ?
		ORDER BY l.updated_at DESC
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []model.UserLike{}
	for rows.Next() {
		var (
			ul                   model.UserLike
			liked                int
			createdMs, updatedMs int64
			poster, release      sql.NullString
			voteAvg              sql.NullFloat64
		)
		if err := rows.Scan(&ul.ID, &ul.UserID, &ul.MovieID, &liked, &createdMs, &updatedMs,
			&ul.Title, &poster, &release, &voteAvg); err != nil {
			return nil, err
		}
		ul.IsLiked = liked != 0
		ul.CreatedAt = fromMillis(createdMs)
		ul.UpdatedAt = fromMillis(updatedMs)
		ul.PosterPath = poster.String
		ul.ReleaseDate = release.String
		ul.VoteAverage = voteAvg.Float64
		likes = append(likes, ul)
	}
	return likes, rows.Err()
}

// RatedMovies lists the movies a user rated with the given polarity,
// newest rating first.
func (r *LikeRepo) RatedMovies(ctx context.Context, userID string, isLiked bool, limit, offset int) ([]model.RatedMovie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.title, m.overview, m.poster_path, m.release_date, m.vote_average, m.vote_count, m.genres, m.created_at, m.updated_at,
		       l.created_at AS rated_at
		FROM movies m
		INNER JOIN likes l ON m.id = l.movie_id
		WHERE l.user_id = ? AND l.is_liked = ?
		ORDER BY l.created_at DESC
		LIMIT ? OFFSET ?`, userID, boolToInt(isLiked), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []model.RatedMovie{}
	for rows.Next() {
		var ratedMs int64
		m, err := scanMovie(func(dest ...any) error {
			return rows.Scan(append(dest, &ratedMs)...)
		})
		if err != nil {
			return nil, err
		}
		movies = append(movies, model.RatedMovie{Movie: m, RatedAt: fromMillis(ratedMs)})
	}
	return movies, rows.Err()
}

// GlobalStats aggregates every edge in the store.  Always computed fresh;
// nothing is cached or incrementally maintained.
func (r *LikeRepo) GlobalStats(ctx context.Context) (model.GlobalStats, error) {
	var s model.GlobalStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN is_liked = 1 THEN 1 END),
			COUNT(CASE WHEN is_liked = 0 THEN 1 END),
			COUNT(DISTINCT user_id),
			COUNT(DISTINCT movie_id)
		FROM likes`).
		Scan(&s.TotalInteractions, &s.TotalLikes, &s.TotalDislikes, &s.UniqueUsers, &s.UniqueMovies)
	return s, err
}

// LikedGenres tallies genre occurrences across the distinct movies a user
// has liked, descending by count.
func (r *LikeRepo) LikedGenres(ctx context.Context, userID string) ([]model.GenreCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT m.genres
		FROM movies m
		INNER JOIN likes l ON m.id = l.movie_id
		WHERE l.user_id = ? AND l.is_liked = 1 AND m.genres IS NOT NULL`, userID)
	if err != nil {
		return nil, err
	}
	return tallyGenreRows(rows)
}

// CommonGenres tallies genre occurrences across all liked edges of all
// users and returns the ten most frequent.
func (r *LikeRepo) CommonGenres(ctx context.Context) ([]model.GenreCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.genres
		FROM movies m
		INNER JOIN likes l ON m.id = l.movie_id
		WHERE l.is_liked = 1 AND m.genres IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	tallied, err := tallyGenreRows(rows)
	if err != nil {
		return nil, err
	}
	if len(tallied) > 10 {
		tallied = tallied[:10]
	}
	return tallied, nil
}

func tallyGenreRows(rows *sql.Rows) ([]model.GenreCount, error) {
	defer rows.Close()
	payloads := []string{}
	for rows.Next() {
		var p sql.NullString
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		if p.Valid {
			payloads = append(payloads, p.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tallyGenres(payloads), nil
}

// GetAll lists every edge with movie title and owner session token,
// newest first.  Admin use only.
func (r *LikeRepo) GetAll(ctx context.Context) ([]model.UserLike, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.user_id, l.movie_id, l.is_liked, l.created_at, l.updated_at,
		       COALESCE(m.title, ''), COALESCE(m.poster_path, ''), COALESCE(m.release_date, ''), COALESCE(m.vote_average, 0)
		FROM likes l
		LEFT JOIN movies m ON l.movie_id = m.id
		ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []model.UserLike{}
	for rows.Next() {
		var (
			ul                   model.UserLike
			liked                int
			createdMs, updatedMs int64
		)
		if err := rows.Scan(&ul.ID, &ul.UserID, &ul.MovieID, &liked, &createdMs, &updatedMs,
			&ul.Title, &ul.PosterPath, &ul.ReleaseDate, &ul.VoteAverage); err != nil {
			return nil, err
		}
		ul.IsLiked = liked != 0
		ul.CreatedAt = fromMillis(createdMs)
		ul.UpdatedAt = fromMillis(updatedMs)
		likes = append(likes, ul)
	}
	return likes, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
