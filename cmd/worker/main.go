package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"loftwork/internal/infrastructure/config"
	"loftwork/internal/infrastructure/database"
	"loftwork/internal/infrastructure/pubsub"
	"loftwork/internal/infrastructure/repository"
	"loftwork/internal/infrastructure/triage"
	"loftwork/internal/shared/logger"
)

func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(&cfg.Logger, false); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting ticket triage worker", "environment", env)

	if !cfg.Triage.Enabled {
		log.Infow("triage is disabled, nothing to do")
		return
	}

	// Initialize database
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	classifier, err := triage.NewOpenAIClassifier(cfg.Triage, log)
	if err != nil {
		logger.Fatal("failed to initialize classifier", "error", err)
	}

	ticketRepo := repository.NewTicketRepository(database.Get())
	eventBus := pubsub.NewRedisTicketEventBus(redisClient, log)
	service := triage.NewService(ticketRepo, classifier, eventBus, log)

	// Create context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("triage worker started, waiting for created tickets", "model", cfg.Triage.Model)

	// Only created events start triage. The service re-checks
	// eligibility itself, so replayed or duplicate events are harmless.
	err = eventBus.Subscribe(ctx, func(handlerCtx context.Context, event pubsub.TicketChangeEvent) {
		if event.ChangeType != pubsub.TicketChangeCreated {
			return
		}
		if err := service.Process(handlerCtx, event.TicketID); err != nil {
			log.Errorw("triage failed", "ticket_id", event.TicketID, "error", err)
		}
	})
	if err != nil && err != context.Canceled {
		log.Errorw("triage subscription ended", "error", err)
	}

	log.Infow("triage worker stopped")
}
