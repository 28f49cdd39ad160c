package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/grapplehq/ringside/internal/config"
	"github.com/grapplehq/ringside/internal/database"
	"github.com/grapplehq/ringside/internal/handler"
	"github.com/grapplehq/ringside/internal/queue"
	"github.com/grapplehq/ringside/internal/repository"
	"github.com/grapplehq/ringside/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()

	wrestlers := repository.NewWrestlerRepo(db)
	shows := repository.NewShowRepo(db)
	rosters := repository.NewRosterRepo(db)
	titles := repository.NewTitleRepo(db)
	matches := repository.NewMatchRepo(db, titles)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(users, tokens, cfg),
		Wrestlers: handler.NewWrestlerHandler(wrestlers),
		Shows:     handler.NewShowHandler(shows, rdb, cacheCfg.Prefix),
		Rosters:   handler.NewRosterHandler(rosters, rdb, cacheCfg.Prefix),
		Titles:    handler.NewTitleHandler(titles, wrestlers, rdb, cacheCfg.Prefix),
		Matches:   handler.NewMatchHandler(matches, titles, wrestlers, rdb, cacheCfg.Prefix),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterPublic(e, h, cacheCfg, rdb)
	router.RegisterProtected(e, h, cfg.JWTSecret)

	// The consumer keeps its own reconnect loop; a broker outage only stalls
	// the title.log feed, never the API.
	go func() {
		if err := queue.StartTitleConsumer(); err != nil {
			log.Printf("title consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBPath)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
