// Package router wires HTTP routes to handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/netflim/movie-reactions/internal/handler"
	"github.com/netflim/movie-reactions/internal/middleware"
)

// RegisterRoutes registers routes that need no session: the liveness
// probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.Health)
}

// RegisterAPI registers the session-scoped API.  Every route below /api
// runs the session middleware so handlers can resolve the visitor, plus
// any extra middleware passed in (the rate limiter in production).
func RegisterAPI(e *echo.Echo, likes *handler.LikeHandler, users *handler.UserHandler, extra ...echo.MiddlewareFunc) {
	api := e.Group("/api", append([]echo.MiddlewareFunc{middleware.SessionToken()}, extra...)...)

	l := api.Group("/likes")
	l.POST("", likes.Create)
	// fixed segments before the parameterized status/delete pair
	l.GET("/user/likes", likes.UserLikes)
	l.GET("/user/liked-movies", likes.LikedMovies)
	l.GET("/user/disliked-movies", likes.DislikedMovies)
	l.GET("/stats/global", likes.GlobalStats)
	l.GET("/movies/most-liked", likes.MostLiked)
	l.GET("/:movieId/status", likes.Status)
	l.DELETE("/:movieId", likes.Delete)

	u := api.Group("/users")
	u.GET("/me", users.Me)
	u.GET("/me/stats", users.MeStats)
	u.GET("/me/liked-movies", users.MeLikedMovies)
	u.POST("/new-session", users.NewSession)
}

// RegisterAdmin registers the admin surface.  Login is open; everything
// else requires a valid ADMIN token signed with the given secret.
func RegisterAdmin(e *echo.Echo, admin *handler.AdminHandler, secret string) {
	e.POST("/admin/login", admin.Login)

	g := e.Group("/admin")
	g.Use(middleware.JWTAuth(secret))
	g.Use(middleware.RequireRole("ADMIN"))
	g.GET("/users", admin.ListUsers)
	g.GET("/movies", admin.ListMovies)
	g.GET("/likes", admin.ListLikes)
	g.GET("/stats", admin.Stats)
}
