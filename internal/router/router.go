// Package router maps the HTTP surface onto handlers and middleware. The
// layout mirrors the public API: /api/auth for unauthenticated session
// operations, /api/user for profile management, /api/post for posts.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/DES-Destry/Unimaster-blog-core/internal/config"
	"github.com/DES-Destry/Unimaster-blog-core/internal/handler"
	"github.com/DES-Destry/Unimaster-blog-core/internal/middleware"
	"github.com/DES-Destry/Unimaster-blog-core/internal/repository"
)

// Deps collects everything route registration needs.
type Deps struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Redis *redis.Client
	Auth  *handler.AuthHandler
	User  *handler.UserHandler
	Post  *handler.PostHandler
}

// Register wires all routes on the provided Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	identity := middleware.Identity(d.Cfg.JWTSecret, d.Users)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)

	// Session operations: no token yet, so these get the per-IP budget.
	auth := e.Group("/api/auth", limiter)
	auth.POST("/registrate", d.Auth.Registrate)
	auth.POST("/login", d.Auth.Login)

	user := e.Group("/api/user", identity)
	user.GET("/", d.User.Me)
	user.PUT("/description", d.User.ChangeDescription)
	user.PUT("/alias", d.User.ChangeAlias)
	user.PUT("/location", d.User.ChangeLocation)
	user.PUT("/avatar", d.User.ChangeAvatar)
	user.POST("/links", d.User.ChangeLinks)
	user.PUT("/username", d.User.ChangeUsername)
	user.GET("/username/history", d.User.UsernameHistory)
	user.PUT("/password", d.User.ChangePassword)
	user.PUT("/privilege", d.User.ChangePrivilege)
	user.DELETE("/", d.User.DeleteUser)
	user.POST("/verification", d.User.RequestVerification)
	user.POST("/verification/confirm", d.User.ConfirmVerification)

	// Emailed verification links arrive without a session; the code alone
	// identifies its owner.
	e.GET("/api/user/verification/confirm", d.User.ConfirmVerificationLink)

	// Restore flows work without a session: the caller lost the password.
	restore := e.Group("/api/user/restore", limiter)
	restore.POST("", d.User.RequestRestore)
	restore.POST("/confirm", d.User.ConfirmRestore)

	post := e.Group("/api/post", identity)
	post.POST("/", d.Post.WritePost)
	post.PUT("/", d.Post.EditPost)
	post.DELETE("/:id", d.Post.DeletePost)
	post.PUT("/like", d.Post.LikePost)
	post.PUT("/dislike", d.Post.DislikePost)
	post.PUT("/comment", d.Post.CommentPost)
	post.PUT("/comment/like", d.Post.LikeComment)
	post.PUT("/comment/dislike", d.Post.DislikeComment)

	// Reading a post needs no session.
	e.GET("/api/post/:id", d.Post.GetPost)
}
