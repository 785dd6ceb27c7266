package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/DES-Destry/Unimaster-blog-core/internal/config"
	"github.com/DES-Destry/Unimaster-blog-core/internal/database"
	"github.com/DES-Destry/Unimaster-blog-core/internal/handler"
	"github.com/DES-Destry/Unimaster-blog-core/internal/queue"
	"github.com/DES-Destry/Unimaster-blog-core/internal/repository"
	"github.com/DES-Destry/Unimaster-blog-core/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)
	changes := repository.NewUsernameChangeRepo(db)
	codes := repository.NewCodeRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	// Mail consumer runs for the lifetime of the process and keeps its own
	// reconnect loop.
	go func() {
		if err := queue.StartMailConsumer(cfg); err != nil {
			log.Printf("mail-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, router.Deps{
		Cfg:   cfg,
		Users: users,
		Redis: rdb,
		Auth:  handler.NewAuthHandler(cfg, users, codes),
		User:  handler.NewUserHandler(cfg, users, changes, codes),
		Post:  handler.NewPostHandler(cfg, posts),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
