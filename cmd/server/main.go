package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/netflim/movie-reactions/internal/config"
	"github.com/netflim/movie-reactions/internal/database"
	"github.com/netflim/movie-reactions/internal/handler"
	"github.com/netflim/movie-reactions/internal/middleware"
	"github.com/netflim/movie-reactions/internal/queue"
	"github.com/netflim/movie-reactions/internal/repository"
	"github.com/netflim/movie-reactions/internal/router"
	"github.com/netflim/movie-reactions/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.InitSchema(db); err != nil {
		log.Fatalf("init schema: %v", err)
	}
	log.Printf("sqlite database ready at %s", cfg.DBPath)

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	likes := repository.NewLikeRepo(db)
	reactions := service.NewReactionService(movies, likes)

	likeHandler := handler.NewLikeHandler(users, movies, likes, reactions)
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		likeHandler.PublishEvents = true
		if os.Getenv("RABBITMQ_CONSUMER") == "true" {
			go func() {
				if err := queue.StartReactionConsumer(); err != nil {
					log.Printf("reaction consumer stopped: %v", err)
				}
			}()
		}
	}
	userHandler := handler.NewUserHandler(users, likes)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.IsProduction())
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.SessionHeader},
	}))

	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	if rlCfg.Enabled && rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAPI(e, likeHandler, userHandler, middleware.NewRateLimiter(rlCfg, rdb))
	if cfg.AdminPasswordHash != "" {
		admin := handler.NewAdminHandler(cfg, users, movies, likes)
		router.RegisterAdmin(e, admin, cfg.AdminSecret)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
