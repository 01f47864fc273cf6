// Package bootstrap assembles the application: every client is constructed
// here and injected downward, nothing lives in package-level state.
package bootstrap

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/auth"
	"github.com/avishek100/metmanichaudhary/internal/config"
	"github.com/avishek100/metmanichaudhary/internal/database"
	"github.com/avishek100/metmanichaudhary/internal/handlers"
	"github.com/avishek100/metmanichaudhary/internal/i18n"
	"github.com/avishek100/metmanichaudhary/internal/middleware"
	"github.com/avishek100/metmanichaudhary/internal/repository"
	"github.com/avishek100/metmanichaudhary/internal/routes"
	"github.com/avishek100/metmanichaudhary/internal/services"
	"github.com/avishek100/metmanichaudhary/internal/storage"
	"github.com/avishek100/metmanichaudhary/internal/utils"
)

type App struct {
	Config *config.Config
	Logger *zap.Logger
	Fiber  *fiber.App

	mongo *mongo.Client
	redis *redis.Client
}

type CleanupFn func(context.Context)

// Init builds the whole application and returns it with a cleanup function
// that releases every client it opened.
func Init(configPath string) (*App, CleanupFn, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("starting", zap.String("env", cfg.App.Env))

	catalog, err := i18n.Load()
	if err != nil {
		return nil, nil, err
	}

	ctx := context.Background()
	db, mongoClient, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	// redis only backs the login rate limiter; the API runs without it
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis unavailable, login rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	store, err := storage.NewS3Store(ctx, cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, cfg.AWS.Folder)
	if err != nil {
		return nil, nil, err
	}

	jwtMgr := auth.NewJWTManager(cfg.JWT.Secret, cfg.TokenTTL)

	userRepo := repository.NewMongoUserRepo(db)
	newsRepo := repository.NewMongoNewsRepo(db)
	photoRepo := repository.NewMongoPhotoRepo(db)
	videoRepo := repository.NewMongoVideoRepo(db)

	authSvc := services.NewAuthService(userRepo, jwtMgr, logger)
	newsSvc := services.NewNewsService(newsRepo, userRepo, store, logger)
	photoSvc := services.NewPhotoService(photoRepo, userRepo, store, logger)
	videoSvc := services.NewVideoService(videoRepo, userRepo, store, logger)
	adminSvc := services.NewAdminService(userRepo, newsRepo, photoRepo, videoRepo, logger)

	loginLimiter := middleware.NewRateLimiter(rdb, "login",
		cfg.RateLimit.LoginLimit, time.Duration(cfg.RateLimit.LoginWindowSec)*time.Second, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.App.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.App.WriteTimeoutSec) * time.Second,
		BodyLimit:    cfg.App.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handlers.NewErrorHandler(catalog, logger, !dev),
	})
	routes.Setup(app, routes.Deps{
		JWT:          jwtMgr,
		Users:        userRepo,
		Auth:         handlers.NewAuthHandler(authSvc, logger),
		News:         handlers.NewNewsHandler(newsSvc, catalog, logger),
		Photos:       handlers.NewPhotoHandler(photoSvc, catalog, logger),
		Videos:       handlers.NewVideoHandler(videoSvc, catalog, logger),
		Admin:        handlers.NewAdminHandler(adminSvc, catalog, logger),
		LoginLimiter: loginLimiter,
	})

	a := &App{Config: cfg, Logger: logger, Fiber: app, mongo: mongoClient, redis: rdb}
	cleanup := func(ctx context.Context) {
		_ = a.Fiber.Shutdown()
		if err := a.mongo.Disconnect(ctx); err != nil {
			logger.Error("mongodb disconnect failed", zap.Error(err))
		}
		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				logger.Error("redis close failed", zap.Error(err))
			}
		}
		_ = logger.Sync()
	}
	return a, cleanup, nil
}
