package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/netflim/movie-reactions/internal/database"
	"github.com/netflim/movie-reactions/internal/handler"
	"github.com/netflim/movie-reactions/internal/model"
	"github.com/netflim/movie-reactions/internal/repository"
	"github.com/netflim/movie-reactions/internal/router"
	"github.com/netflim/movie-reactions/internal/service"
)

func newBackend(t *testing.T) *httptest.Server {
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

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	likes := repository.NewLikeRepo(db)

	e := echo.New()
	e.HideBanner = true
	router.RegisterAPI(e,
		handler.NewLikeHandler(users, movies, likes, service.NewReactionService(movies, likes)),
		handler.NewUserHandler(users, likes))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestToggleCycleAgainstBackend(t *testing.T) {
	srv := newBackend(t)
	cache := NewReactionCache(New(srv.URL, "cycle-session"))
	ctx := context.Background()
	meta := &model.Movie{Title: "Heat", VoteAverage: 8.3}

	// neutral -> liked
	entry, err := cache.Toggle(ctx, 42, meta)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if entry.Reaction != model.ReactionLiked {
		t.Fatalf("after first toggle reaction = %v, want liked", entry.Reaction)
	}
	if entry.Stats.Likes != 1 {
		t.Fatalf("stats not refreshed after toggle: %+v", entry.Stats)
	}

	// liked -> disliked
	entry, err = cache.Toggle(ctx, 42, nil)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if entry.Reaction != model.ReactionDisliked {
		t.Fatalf("after second toggle reaction = %v, want disliked", entry.Reaction)
	}
	if entry.Stats.Dislikes != 1 || entry.Stats.Likes != 0 {
		t.Fatalf("stats after flip = %+v", entry.Stats)
	}

	// disliked -> neutral
	entry, err = cache.Toggle(ctx, 42, nil)
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if entry.Reaction != model.ReactionNeutral {
		t.Fatalf("after third toggle reaction = %v, want neutral", entry.Reaction)
	}

	// the server agrees the cycle closed
	status, err := New(srv.URL, "cycle-session").Status(ctx, 42)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.IsLiked != model.ReactionNeutral {
		t.Fatalf("server state = %v, want neutral", status.IsLiked)
	}
}

func TestLoadReadsServerState(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()

	c := New(srv.URL, "loader-session")
	if _, err := c.RecordReaction(ctx, 7, true, &model.Movie{Title: "Alien"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	cache := NewReactionCache(c)
	entry, err := cache.Load(ctx, 7)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entry.Reaction != model.ReactionLiked || entry.Stats.Likes != 1 {
		t.Fatalf("loaded entry = %+v, want liked with 1 like", entry)
	}
	if cache.IsLoading(7) {
		t.Fatalf("loading flag stuck after load")
	}
}

func TestToggleRollsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"storage_error","message":"database error"}`))
	}))
	defer srv.Close()

	cache := NewReactionCache(New(srv.URL, "s"))
	entry, err := cache.Toggle(context.Background(), 1, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("err = %v, want APIError with status 500", err)
	}
	if entry.Reaction != model.ReactionNeutral {
		t.Fatalf("reaction = %v, want rollback to neutral", entry.Reaction)
	}
	if cache.IsLoading(1) {
		t.Fatalf("loading flag stuck after failed toggle")
	}
}

func TestToggleKeepsOptimisticStateWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening on the URL anymore

	cache := NewReactionCache(New(srv.URL, "s"))
	entry, err := cache.Toggle(context.Background(), 1, nil)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
	if entry.Reaction != model.ReactionLiked {
		t.Fatalf("reaction = %v, want the optimistic liked state kept", entry.Reaction)
	}

	// a second toggle keeps advancing locally
	entry, err = cache.Toggle(context.Background(), 1, nil)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("second toggle err = %v", err)
	}
	if entry.Reaction != model.ReactionDisliked {
		t.Fatalf("reaction = %v, want disliked", entry.Reaction)
	}
}

func TestToggleRejectsConcurrentToggle(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"storage_error","message":"database error"}`))
	}))
	defer srv.Close()
	defer close(release)

	cache := NewReactionCache(New(srv.URL, "s"))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Toggle(context.Background(), 1, nil)
	}()

	<-entered
	_, err := cache.Toggle(context.Background(), 1, nil)
	if !errors.Is(err, ErrToggleInFlight) {
		t.Fatalf("err = %v, want ErrToggleInFlight", err)
	}

	release <- struct{}{}
	<-done
}

func TestLoadUnreachableBackendIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cache := NewReactionCache(New(srv.URL, "s"))
	entry, err := cache.Load(context.Background(), 5)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
	if entry.Reaction != model.ReactionNeutral || entry.Stats != (model.MovieStats{}) {
		t.Fatalf("entry = %+v, want neutral with zero stats", entry)
	}
}
