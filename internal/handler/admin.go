package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/netflim/movie-reactions/internal/config"
	"github.com/netflim/movie-reactions/internal/repository"
	"github.com/netflim/movie-reactions/internal/utils"
)

// AdminHandler serves the /admin endpoints: a password login issuing a
// short-lived JWT, and raw listings over the three tables for
// inspection.  The routes are only registered when an admin password
// hash is configured.
type AdminHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Movies *repository.MovieRepo
	Likes  *repository.LikeRepo
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(cfg config.Config, users *repository.UserRepo, movies *repository.MovieRepo, likes *repository.LikeRepo) *AdminHandler {
	if users == nil || movies == nil || likes == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Users: users, Movies: movies, Likes: likes}
}

// Login handles POST /admin/login.  The password is compared against the
// configured bcrypt hash; on success an HS256 token with role ADMIN is
// returned.
func (h *AdminHandler) Login(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil || body.Password == "" {
		return validationError(c, fieldError{Field: "password", Message: "password is required"})
	}
	if !utils.VerifyPassword(h.Cfg.AdminPasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.Cfg.AdminSecret, "admin", "ADMIN", h.Cfg.AdminTokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"token":     tok.Token,
			"expiresAt": tok.Exp,
		},
	})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.GetAll(c.Request().Context())
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}

// ListMovies handles GET /admin/movies.
func (h *AdminHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.GetAll(c.Request().Context())
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": movies})
}

// ListLikes handles GET /admin/likes.
func (h *AdminHandler) ListLikes(c echo.Context) error {
	likes, err := h.Likes.GetAll(c.Request().Context())
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": likes})
}

// Stats handles GET /admin/stats: the global reaction aggregates plus
// total row counts of the users and movies tables.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	global, err := h.Likes.GlobalStats(ctx)
	if err != nil {
		return storageError(c)
	}
	totalUsers, err := h.Users.Count(ctx)
	if err != nil {
		return storageError(c)
	}
	totalMovies, err := h.Movies.Count(ctx)
	if err != nil {
		return storageError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"totalInteractions": global.TotalInteractions,
			"totalLikes":        global.TotalLikes,
			"totalDislikes":     global.TotalDislikes,
			"uniqueUsers":       global.UniqueUsers,
			"uniqueMovies":      global.UniqueMovies,
			"totalUsers":        totalUsers,
			"totalMovies":       totalMovies,
		},
	})
}
