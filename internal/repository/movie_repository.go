package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"github.com/netflim/movie-reactions/internal/model"
)

// MovieRepo provides access to the movies cache table.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo returns a MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// Upsert inserts or refreshes a cached movie record.  All mutable fields
// are replaced and updated_at is bumped; created_at keeps the value of the
// first insert.
func (r *MovieRepo) Upsert(ctx context.Context, m model.Movie) error {
	var genres any
	if len(m.Genres) > 0 {
		b, err := json.Marshal(m.Genres)
		if err != nil {
			return err
		}
		genres = string(b)
	}
	now := nowMillis()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO movies (id, title, overview, poster_path, release_date, vote_average, vote_count, genres, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			title        = excluded.title,
			overview     = excluded.overview,
			poster_path  = excluded.poster_path,
			release_date = excluded.release_date,
			vote_average = excluded.vote_average,
			vote_count   = excluded.vote_count,
			genres       = excluded.genres,
			updated_at   = excluded.updated_at`,
		m.ID, m.Title, m.Overview, m.PosterPath, m.ReleaseDate,
		m.VoteAverage, m.VoteCount, genres, now, now)
	return err
}

// GetByID fetches a cached movie.  Returns ErrMovieNotFound when the id
// has never been cached.
func (r *MovieRepo) GetByID(ctx context.Context, id int64) (model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, overview, poster_path, release_date, vote_average, vote_count, genres, created_at, updated_at
		FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Stats counts the reactions recorded for a movie partitioned by is_liked.
// A movie nobody has rated yields all zeros, whether cached or not.
func (r *MovieRepo) Stats(ctx context.Context, movieID int64) (model.MovieStats, error) {
	var s model.MovieStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN is_liked = 1 THEN 1 END),
			COUNT(CASE WHEN is_liked = 0 THEN 1 END)
		FROM likes
		WHERE movie_id = ?`, movieID).
		Scan(&s.TotalInteractions, &s.Likes, &s.Dislikes)
	return s, err
}

// MostLiked returns cached movies ranked by like count, catalog rating as
// tiebreak.  Movies without a single like are excluded.
func (r *MovieRepo) MostLiked(ctx context.Context, limit int) ([]model.RankedMovie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			m.id, m.title, m.overview, m.poster_path, m.release_date, m.vote_average, m.vote_count, m.genres, m.created_at, m.updated_at,
			COUNT(CASE WHEN l.is_liked = 1 THEN 1 END) AS like_count,
			COUNT(CASE WHEN l.is_liked = 0 THEN 1 END) AS dislike_count
		FROM movies m
		LEFT JOIN likes l ON m.id = l.movie_id
		GROUP BY m.id
		HAVING like_count > 0
		ORDER BY like_count DESC, m.vote_average DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranked := []model.RankedMovie{}
	for rows.Next() {
		var rm model.RankedMovie
		m, err := scanMovie(func(dest ...any) error {
			return rows.Scan(append(dest, &rm.LikeCount, &rm.DislikeCount)...)
		})
		if err != nil {
			return nil, err
		}
		rm.Movie = m
		ranked = append(ranked, rm)
	}
	return ranked, rows.Err()
}

// Count returns the total number of cached movies.
func (r *MovieRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n)
	return n, err
}

// GetAll lists every cached movie, newest first.  Admin use only.
func (r *MovieRepo) GetAll(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, overview, poster_path, release_date, vote_average, vote_count, genres, created_at, updated_at
		FROM movies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// scanMovie scans the ten movie columns through the provided scan
// function, converting nullable columns and decoding the genres JSON.
// A malformed genres payload is treated as empty rather than an error.
func scanMovie(scan func(dest ...any) error) (model.Movie, error) {
	var (
		m                    model.Movie
		overview, poster     sql.NullString
		release, genres      sql.NullString
		voteAvg              sql.NullFloat64
		voteCount            sql.NullInt64
		createdMs, updatedMs int64
	)
	err := scan(&m.ID, &m.Title, &overview, &poster, &release,
		&voteAvg, &voteCount, &genres, &createdMs, &updatedMs)
	if err != nil {
		return model.Movie{}, err
	}
	m.Overview = overview.String
	m.PosterPath = poster.String
	m.ReleaseDate = release.String
	m.VoteAverage = voteAvg.Float64
	m.VoteCount = voteCount.Int64
	m.CreatedAt = fromMillis(createdMs)
	m.UpdatedAt = fromMillis(updatedMs)
	if genres.Valid && genres.String != "" {
		// ignore unparsable payloads; the column is best-effort cache
		_ = json.Unmarshal([]byte(genres.String), &m.Genres)
	}
	return m, nil
}

// tallyGenres decodes a list of stored genre JSON payloads and counts
// occurrences by genre name, descending.  Ties are broken by name so the
// ordering is deterministic.  Malformed payloads are skipped silently.
func tallyGenres(payloads []string) []model.GenreCount {
	counts := map[string]int64{}
	for _, p := range payloads {
		var genres []model.Genre
		if err := json.Unmarshal([]byte(p), &genres); err != nil {
			continue
		}
		for _, g := range genres {
			counts[g.Name]++
		}
	}
	out := make([]model.GenreCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, model.GenreCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
