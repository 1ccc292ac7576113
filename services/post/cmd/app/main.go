package main

import (
	"snappoint/pkg/cache"
	"snappoint/pkg/config"
	"snappoint/pkg/database"
	"snappoint/pkg/logger"
	"snappoint/pkg/queue"
	internal "snappoint/services/post/internal/app"
)

// @title           Post Service API
// @version         1.0
// @description     Post composition service: ordered content blocks with attached media files.

// @host      localhost:8002
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, publish events disabled: %v", err)
		queueClient = nil
	}

	internal.Run(cfg, log, db, queueClient, redisClient)
}
