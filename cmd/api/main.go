package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/recipebox/recipe-api/docs"
	"github.com/recipebox/recipe-api/internal/api"
	"github.com/recipebox/recipe-api/internal/core/service"
	"github.com/recipebox/recipe-api/internal/infrastructure/config"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/mongo"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/redis"
	"github.com/recipebox/recipe-api/internal/infrastructure/queue"
	"github.com/recipebox/recipe-api/pkg/logger"
)

// @title        RecipeBox API
// @version      1.0
// @description  Multi-tenant recipe management service with token authentication.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	userRepo := mongo.NewUserRepository(db)
	recipeRepo := mongo.NewRecipeRepository(db)
	activityRepo := mongo.NewActivityRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := recipeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("recipe indexes failed")
	}

	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(ctx)

	throttle := redis.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)
	userService := service.NewUserService(userRepo, throttle, cfg.JWTSecret, cfg.TokenTTL, log)
	recipeService := service.NewRecipeService(recipeRepo, dispatcher, log)

	e := api.NewRouter(api.Dependencies{
		Users:    userService,
		Recipes:  recipeService,
		Resolver: userService,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
	}

	log.Info().Msg("server stopped")
}
