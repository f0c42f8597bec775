package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-collab/configs"
	v1 "team-collab/internal/api/v1"
	"team-collab/internal/apperror"
	"team-collab/internal/config"
	"team-collab/internal/repository"
	"team-collab/pkg/database"
	"team-collab/pkg/logger"
	"team-collab/pkg/translator"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	if err := logger.InitLoggers(cfg.LogDir); err != nil {
		log.Fatalf("init loggers: %v", err)
	}
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("env", cfg.AppEnv), zap.String("time", time.Now().Format(time.RFC3339)))

	translator.InitTranslator(translator.Config{TranslationFolder: cfg.TranslationsDir})

	if cfg.JWTSecret == "" {
		logger.SystemLogger.Fatal("JWT_SECRET must be set in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.SystemLogger.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()
	logger.SystemLogger.Info("Database Connected", zap.String("driver", cfg.DBDriver))

	if err := repository.CreateTableIfNotExists(ctx, db); err != nil {
		logger.SystemLogger.Fatal("Schema bootstrap failed", zap.Error(err))
	}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		err := repository.CreateAdminUser(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
		switch {
		case errors.Is(err, apperror.ErrUserExists):
			logger.SystemLogger.Info("Admin user already exists", zap.String("email", cfg.AdminEmail))
		case err != nil:
			logger.SystemLogger.Fatal("Admin seed failed", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb, err = database.ConnectRedis(ctx, cfg)
		if err != nil {
			// The cache is optional; run without it.
			logger.SystemLogger.Warn("Redis unavailable, user cache disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
			logger.SystemLogger.Info("Redis Connected")
		}
	}

	deps := config.NewDependencies(cfg, db, rdb)
	go deps.Hub.Run(ctx)

	app := v1.NewApp(cfg, deps.Handlers(), deps.Issuer)

	go func() {
		<-ctx.Done()
		logger.SystemLogger.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.ErrorLogger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logger.SystemLogger.Info("Application ready", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
