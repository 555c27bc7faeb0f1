package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestUserGetOrCreateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	first, err := users.GetOrCreate(ctx, "session-abc")
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	second, err := users.GetOrCreate(ctx, "session-abc")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same session produced two users: %s vs %s", first.ID, second.ID)
	}

	other, err := users.GetOrCreate(ctx, "session-xyz")
	if err != nil {
		t.Fatalf("GetOrCreate other session: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("distinct sessions share a user id")
	}

	n, err := users.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("user count = %d, want 2", n)
	}
}

func TestUserGetOrCreateConcurrent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := users.GetOrCreate(context.Background(), "shared-token")
			ids[i], errs[i] = u.ID, err
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("worker %d got user %s, want %s", i, ids[i], ids[0])
		}
	}
}

func TestUserGetBySessionIDNotFound(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)

	_, err := users.GetBySessionID(context.Background(), "never-seen")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserStatsPartitionsByReaction(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	movies := NewMovieRepo(db)
	likes := NewLikeRepo(db)

	u := seedUser(t, users, "stats-session")
	for i := int64(1); i <= 4; i++ {
		seedMovie(t, movies, i, "movie")
	}
	seedLike(t, likes, u.ID, 1, true)
	seedLike(t, likes, u.ID, 2, true)
	seedLike(t, likes, u.ID, 3, true)
	seedLike(t, likes, u.ID, 4, false)

	stats, err := users.Stats(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReactions != 4 || stats.LikedMovies != 3 || stats.DislikedMovies != 1 {
		t.Fatalf("stats = %+v, want {4 3 1}", stats)
	}
}

func TestUserStatsEmpty(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)

	u := seedUser(t, users, "quiet-session")
	stats, err := users.Stats(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReactions != 0 || stats.LikedMovies != 0 || stats.DislikedMovies != 0 {
		t.Fatalf("stats = %+v, want zeroes", stats)
	}
}
