package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"

	"github.com/PiyushPb/vichar-backend/internal/config"
	"github.com/PiyushPb/vichar-backend/internal/database"
	"github.com/PiyushPb/vichar-backend/internal/events"
	"github.com/PiyushPb/vichar-backend/internal/handlers"
	"github.com/PiyushPb/vichar-backend/internal/middleware"
	"github.com/PiyushPb/vichar-backend/internal/repository"
	"github.com/PiyushPb/vichar-backend/internal/routes"
	"github.com/PiyushPb/vichar-backend/internal/services"
	"github.com/PiyushPb/vichar-backend/internal/utils"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.App.Env)
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting vichar-backend in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	var limiter *middleware.RateLimiter
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		client, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.DialTimeout, sugar)
		if err != nil {
			sugar.Fatal(err)
		}
		redisClient = client
		limiter = middleware.NewRateLimiter(client, "authrl", cfg.Security.AuthRateLimitPerMin, time.Minute)
	} else {
		sugar.Warn("Redis not configured. Auth rate limiting is disabled.")
	}

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if publisher == nil {
		sugar.Warn("Kafka not configured. Domain events will not be published.")
	}

	userRepo, err := repository.NewMongoUserRepo(db, cfg.Mongo.UserCollection, cfg.Mongo.Transactions)
	if err != nil {
		sugar.Fatalf("Failed to initialize user repository: %v", err)
	}
	tweetRepo, err := repository.NewMongoTweetRepo(db, cfg.Mongo.TweetCollection, cfg.Mongo.UserCollection, cfg.Mongo.Transactions)
	if err != nil {
		sugar.Fatalf("Failed to initialize tweet repository: %v", err)
	}

	authSvc := services.NewAuthService(userRepo, publisher, logger, services.AuthConfig{
		JWTSecret:     cfg.App.JWT.Secret,
		SessionTTL:    cfg.SessionTTL(),
		BcryptCost:    cfg.Security.BcryptCost,
		ServerURL:     cfg.App.ServerURL,
		ResetTokenTTL: cfg.ResetTokenTTL(),
	})
	userSvc := services.NewUserService(userRepo, publisher, logger, cfg.Security.BcryptCost)
	tweetSvc := services.NewTweetService(tweetRepo, publisher, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	})

	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(logger))

	routes.Register(app, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc, logger),
		User:      handlers.NewUserHandler(userSvc, logger),
		Tweet:     handlers.NewTweetHandler(tweetSvc, logger),
		JWTSecret: cfg.App.JWT.Secret,
		Limiter:   limiter,
		Mongo:     mongoClient,
		Redis:     redisClient,
	})

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}
	if err := publisher.Close(); err != nil {
		sugar.Errorf("Kafka producer close error: %v", err)
	}

	sugar.Info("Graceful shutdown complete.")
}
