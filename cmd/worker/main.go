// cmd/worker/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/dailyfresh-backend/internal/config"
	"github.com/your-org/dailyfresh-backend/internal/domain/cart"
	"github.com/your-org/dailyfresh-backend/internal/domain/catalog"
	"github.com/your-org/dailyfresh-backend/internal/domain/order"
	"github.com/your-org/dailyfresh-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/dailyfresh-backend/internal/infrastructure/database/redis"
	"github.com/your-org/dailyfresh-backend/internal/jobs"
	"github.com/your-org/dailyfresh-backend/internal/pkg/email"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.Infof("Starting %s worker v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	client := redisClient.GetClient()
	gormDB := db.GetDB()

	// Wire the services the job handlers need
	queue := jobs.NewQueue(client, cfg.Worker.QueueKey)
	catalogService := catalog.NewService(gormDB, cfg)
	homepageService := catalog.NewHomepageService(
		catalog.NewIndexRepository(gormDB),
		catalog.NewIndexCache(client, cfg),
	)
	orderService := order.NewService(gormDB, cart.NewRedisStore(client), queue)
	emailService := email.NewEmailService(cfg)

	handlers := jobs.NewHandlers(cfg, emailService, catalogService, homepageService, orderService)

	worker := jobs.NewWorker(client, cfg.Worker.QueueKey, cfg.Worker.Concurrency, cfg.Worker.PopTimeout, logger)
	handlers.RegisterAll(worker)

	// Warm the homepage cache on boot
	if _, err := homepageService.Rebuild(context.Background()); err != nil {
		logger.WithError(err).Warn("Homepage cache warm-up failed")
	}

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Worker stopped with error: %v", err)
	}

	logger.Info("Worker shutdown completed")
}
