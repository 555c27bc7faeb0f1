package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/netflim/movie-reactions/internal/database"
	"github.com/netflim/movie-reactions/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := database.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, users *UserRepo, token string) model.User {
	t.Helper()
	u, err := users.GetOrCreate(context.Background(), token)
	if err != nil {
		t.Fatalf("seed user %q: %v", token, err)
	}
	return u
}

func seedMovie(t *testing.T, movies *MovieRepo, id int64, title string, genres ...model.Genre) {
	t.Helper()
	err := movies.Upsert(context.Background(), model.Movie{
		ID:          id,
		Title:       title,
		VoteAverage: 7.5,
		VoteCount:   100,
		Genres:      genres,
	})
	if err != nil {
		t.Fatalf("seed movie %d: %v", id, err)
	}
}

func seedLike(t *testing.T, likes *LikeRepo, userID string, movieID int64, isLiked bool) model.LikeEdge {
	t.Helper()
	e, err := likes.Upsert(context.Background(), userID, movieID, isLiked)
	if err != nil {
		t.Fatalf("seed like user=%s movie=%d: %v", userID, movieID, err)
	}
	return e
}
