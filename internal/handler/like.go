package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/netflim/movie-reactions/internal/middleware"
	"github.com/netflim/movie-reactions/internal/model"
	"github.com/netflim/movie-reactions/internal/queue"
	"github.com/netflim/movie-reactions/internal/repository"
	"github.com/netflim/movie-reactions/internal/service"
)

// LikeHandler serves the /api/likes endpoints.  Writes resolve the
// session to a user (creating one on first sight); reads use the
// no-create lookup so checking status never materializes a user row.
type LikeHandler struct {
	Users     *repository.UserRepo
	Movies    *repository.MovieRepo
	Likes     *repository.LikeRepo
	Reactions *service.ReactionService

	// PublishEvents enables best-effort reaction.recorded events.
	PublishEvents bool
}

// NewLikeHandler constructs a LikeHandler.  All dependencies must be
// non-nil.
func NewLikeHandler(users *repository.UserRepo, movies *repository.MovieRepo, likes *repository.LikeRepo, reactions *service.ReactionService) *LikeHandler {
	if users == nil || movies == nil || likes == nil || reactions == nil {
		panic("nil dependency passed to NewLikeHandler")
	}
	return &LikeHandler{Users: users, Movies: movies, Likes: likes, Reactions: reactions}
}

// Create handles POST /api/likes.  The body carries the movie id, the
// desired boolean for the edge and optionally the movie metadata to
// cache.  The client computes which boolean comes next in the reaction
// cycle; the server persists whatever it is given and returns the edge
// together with fresh movie statistics.
func (h *LikeHandler) Create(c echo.Context) error {
	var body struct {
		MovieID   int64        `json:"movieId"`
		IsLiked   *bool        `json:"isLiked"`
		MovieData *model.Movie `json:"movieData"`
	}
	if err := c.Bind(&body); err != nil {
		return validationError(c, fieldError{Field: "body", Message: "malformed JSON body"})
	}
	if body.MovieID <= 0 {
		return validationError(c, fieldError{Field: "movieId", Message: "movieId must be a positive integer"})
	}
	isLiked := true
	if body.IsLiked != nil {
		isLiked = *body.IsLiked
	}

	ctx := c.Request().Context()
	user, err := h.Users.GetOrCreate(ctx, middleware.SessionFromContext(c))
	if err != nil {
		return storageError(c)
	}
	like, err := h.Reactions.RecordReaction(ctx, user.ID, body.MovieID, isLiked, body.MovieData)
	if err != nil {
		return storageError(c)
	}
	stats, err := h.Movies.Stats(ctx, body.MovieID)
	if err != nil {
		return storageError(c)
	}

	if h.PublishEvents {
		ev := queue.ReactionRecordedEvent{
			LikeID:     like.ID,
			UserID:     like.UserID,
			MovieID:    like.MovieID,
			IsLiked:    like.IsLiked,
			RecordedAt: like.UpdatedAt.Format(time.RFC3339),
		}
		if body.MovieData != nil {
			ev.MovieTitle = body.MovieData.Title
		}
		go func() { _ = queue.PublishReactionRecorded(context.Background(), ev) }()
	}

	message := "movie disliked"
	if isLiked {
		message = "movie liked"
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": message,
		"data": echo.Map{
			"like":       like,
			"movieStats": stats,
		},
	})
}

// Status handles GET /api/likes/:movieId/status.  An unknown session
// reports the neutral state with the movie's statistics; no user row is
// created as a side effect of reading.
func (h *LikeHandler) Status(c echo.Context) error {
	movieID, ok := movieIDParam(c)
	if !ok {
		return validationError(c, fieldError{Field: "movieId", Message: "movieId must be a positive integer"})
	}
	ctx := c.Request().Context()

	stats, err := h.Movies.Stats(ctx, movieID)
	if err != nil {
		return storageError(c)
	}

	reaction := model.ReactionNeutral
	user, err := h.Users.GetBySessionID(ctx, middleware.SessionFromContext(c))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return storageError(c)
	}
	if err == nil {
		reaction, _, err = h.Reactions.GetReaction(ctx, user.ID, movieID)
		if err != nil {
			return storageError(c)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"isLiked":    reaction,
			"movieStats": stats,
		},
	})
}

// Delete handles DELETE /api/likes/:movieId.  It returns the pair to the
// neutral state.  404 when either the session has no user or the pair
// holds no edge.
func (h *LikeHandler) Delete(c echo.Context) error {
	movieID, ok := movieIDParam(c)
	if !ok {
		return validationError(c, fieldError{Field: "movieId", Message: "movieId must be a positive integer"})
	}
	ctx := c.Request().Context()

	user, err := h.Users.GetBySessionID(ctx, middleware.SessionFromContext(c))
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFoundError(c, "user not found")
	}
	if err != nil {
		return storageError(c)
	}
	deleted, err := h.Reactions.ClearReaction(ctx, user.ID, movieID)
	if err != nil {
		return storageError(c)
	}
	if !deleted {
		return notFoundError(c, "no reaction recorded for this movie")
	}
	stats, err := h.Movies.Stats(ctx, movieID)
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "reaction removed",
		"data": echo.Map{
			"deleted":    true,
			"movieStats": stats,
		},
	})
}

// UserLikes handles GET /api/likes/user/likes: the session's edges joined
// with movie display fields, paginated.
func (h *LikeHandler) UserLikes(c echo.Context) error {
	limit, offset, errs := pagination(c)
	if len(errs) > 0 {
		return validationError(c, errs...)
	}
	ctx := c.Request().Context()

	user, err := h.Users.GetBySessionID(ctx, middleware.SessionFromContext(c))
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data": echo.Map{
				"likes":      []model.UserLike{},
				"stats":      model.UserStats{},
				"pagination": echo.Map{"limit": limit, "offset": offset, "total": 0},
			},
		})
	}
	if err != nil {
		return storageError(c)
	}

	likes, err := h.Likes.UserLikes(ctx, user.ID, limit, offset)
	if err != nil {
		return storageError(c)
	}
	stats, err := h.Users.Stats(ctx, user.ID)
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"likes":      likes,
			"stats":      stats,
			"pagination": echo.Map{"limit": limit, "offset": offset, "total": stats.TotalReactions},
		},
	})
}

// LikedMovies handles GET /api/likes/user/liked-movies.
func (h *LikeHandler) LikedMovies(c echo.Context) error {
	return h.ratedMovies(c, true)
}

// DislikedMovies handles GET /api/likes/user/disliked-movies.
func (h *LikeHandler) DislikedMovies(c echo.Context) error {
	return h.ratedMovies(c, false)
}

func (h *LikeHandler) ratedMovies(c echo.Context, isLiked bool) error {
	limit, offset, errs := pagination(c)
	if len(errs) > 0 {
		return validationError(c, errs...)
	}
	ctx := c.Request().Context()

	user, err := h.Users.GetBySessionID(ctx, middleware.SessionFromContext(c))
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data": echo.Map{
				"movies":     []model.RatedMovie{},
				"stats":      model.UserStats{},
				"pagination": echo.Map{"limit": limit, "offset": offset, "total": 0},
			},
		})
	}
	if err != nil {
		return storageError(c)
	}

	movies, err := h.Likes.RatedMovies(ctx, user.ID, isLiked, limit, offset)
	if err != nil {
		return storageError(c)
	}
	stats, err := h.Users.Stats(ctx, user.ID)
	if err != nil {
		return storageError(c)
	}
	total := stats.LikedMovies
	if !isLiked {
		total = stats.DislikedMovies
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"movies":     movies,
			"stats":      stats,
			"pagination": echo.Map{"limit": limit, "offset": offset, "total": total},
		},
	})
}

// GlobalStats handles GET /api/likes/stats/global.
func (h *LikeHandler) GlobalStats(c echo.Context) error {
	stats, err := h.Likes.GlobalStats(c.Request().Context())
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

// MostLiked handles GET /api/likes/movies/most-liked.
func (h *LikeHandler) MostLiked(c echo.Context) error {
	limit, _, errs := pagination(c)
	if len(errs) > 0 {
		return validationError(c, errs...)
	}
	movies, err := h.Movies.MostLiked(c.Request().Context(), limit)
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"movies":     movies,
			"pagination": echo.Map{"limit": limit, "total": len(movies)},
		},
	})
}
