// Package config assembles the application's object graph from the loaded
// configuration and open connections.
package config

import (
	"context"

	"team-collab/configs"
	v1 "team-collab/internal/api/v1"
	"team-collab/internal/api/v1/handlers"
	"team-collab/internal/cache"
	"team-collab/internal/repository"
	"team-collab/internal/service"
	myws "team-collab/internal/websocket"
	"team-collab/pkg/session"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

// Dependencies is everything the HTTP layer needs. Redis may be nil, in
// which case user lookups skip the cache.
type Dependencies struct {
	DB          *sqlx.DB
	RedisClient *redis.Client
	Validate    *validator.Validate
	Issuer      *session.Issuer
	Hub         *myws.Hub

	Users    *cache.UserCache
	Tasks    *repository.TaskRepository
	Comments *repository.CommentRepository

	AuthService    *service.AuthService
	UserService    *service.UserService
	TaskService    *service.TaskService
	CommentService *service.CommentService
}

func NewDependencies(cfg configs.Config, db *sqlx.DB, rdb *redis.Client) *Dependencies {
	d := &Dependencies{
		DB:          db,
		RedisClient: rdb,
		Validate:    service.NewValidator(),
		Issuer:      session.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Hub:         myws.NewHub(0),
		Users:       cache.NewUserCache(repository.NewUserRepository(db), rdb, cfg.UserCacheTTL),
		Tasks:       repository.NewTaskRepository(db),
		Comments:    repository.NewCommentRepository(db),
	}

	notify := service.WithNotifier(d.Hub)
	d.AuthService = service.NewAuthService(d.Users, d.Issuer, d.Validate, cfg.BcryptCost)
	d.UserService = service.NewUserService(d.Users, d.Validate)
	d.TaskService = service.NewTaskService(d.Tasks, d.Comments, d.Users, notify)
	d.CommentService = service.NewCommentService(d.Comments, d.Tasks, d.Users, notify)
	return d
}

// Handlers builds the route handlers over the services.
func (d *Dependencies) Handlers() v1.Handlers {
	var redisPing handlers.Pinger
	if d.RedisClient != nil {
		redisPing = func(ctx context.Context) error { return d.RedisClient.Ping(ctx).Err() }
	}

	return v1.Handlers{
		Auth:     handlers.NewAuthHandler(d.AuthService),
		Users:    handlers.NewUserHandler(d.UserService),
		Tasks:    handlers.NewTaskHandler(d.TaskService),
		Comments: handlers.NewCommentHandler(d.CommentService),
		Health:   handlers.NewHealthHandler(d.DB.PingContext, redisPing),
		WS:       handlers.NewWSHandler(d.Hub, d.Issuer),
	}
}
