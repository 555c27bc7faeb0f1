package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/netflim/movie-reactions/internal/middleware"
	"github.com/netflim/movie-reactions/internal/model"
	"github.com/netflim/movie-reactions/internal/repository"
)

// UserHandler serves the /api/users endpoints.
type UserHandler struct {
	Users *repository.UserRepo
	Likes *repository.LikeRepo
}

// NewUserHandler constructs a UserHandler.  Both repositories must be
// non-nil.
func NewUserHandler(users *repository.UserRepo, likes *repository.LikeRepo) *UserHandler {
	if users == nil || likes == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Likes: likes}
}

// Me handles GET /api/users/me.  Unlike the read-only endpoints it
// resolves-or-creates, so a first visit materializes the user row.
func (h *UserHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.Users.GetOrCreate(ctx, middleware.SessionFromContext(c))
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
			"user":  user,
			"stats": stats,
		},
	})
}

// MeStats handles GET /api/users/me/stats.  An unknown session yields
// zero statistics without creating a user.
func (h *UserHandler) MeStats(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.Users.GetBySessionID(ctx, middleware.SessionFromContext(c))
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": model.UserStats{}})
	}
	if err != nil {
		return storageError(c)
	}
	stats, err := h.Users.Stats(ctx, user.ID)
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

// MeLikedMovies handles GET /api/users/me/liked-movies.  Besides the
// paginated movie list it reports the genre frequency of the user's liked
// movies and the most common genres across all users.
func (h *UserHandler) MeLikedMovies(c echo.Context) error {
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
				"movies":       []model.RatedMovie{},
				"stats":        model.UserStats{},
				"genres":       []model.GenreCount{},
				"commonGenres": []model.GenreCount{},
				"pagination":   echo.Map{"limit": limit, "offset": offset, "total": 0},
			},
		})
	}
	if err != nil {
		return storageError(c)
	}

	movies, err := h.Likes.RatedMovies(ctx, user.ID, true, limit, offset)
	if err != nil {
		return storageError(c)
	}
	stats, err := h.Users.Stats(ctx, user.ID)
	if err != nil {
		return storageError(c)
	}
	genres, err := h.Likes.LikedGenres(ctx, user.ID)
	if err != nil {
		return storageError(c)
	}
	commonGenres, err := h.Likes.CommonGenres(ctx)
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"movies":       movies,
			"stats":        stats,
			"genres":       genres,
			"commonGenres": commonGenres,
			"pagination":   echo.Map{"limit": limit, "offset": offset, "total": stats.LikedMovies},
		},
	})
}

// NewSession handles POST /api/users/new-session.  It mints a fresh
// opaque token for the client to present in X-Session-Id; no user row is
// created until the token performs its first write.
func (h *UserHandler) NewSession(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"sessionId": uuid.NewString(),
			"message":   "new session created",
		},
	})
}
