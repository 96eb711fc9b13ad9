package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"loftwork/internal/application/notification"
	ticketusecases "loftwork/internal/application/ticket/usecases"
	"loftwork/internal/application/ticket/view"
	"loftwork/internal/infrastructure/cache"
	"loftwork/internal/infrastructure/config"
	"loftwork/internal/infrastructure/database"
	"loftwork/internal/infrastructure/email"
	"loftwork/internal/infrastructure/migration"
	"loftwork/internal/infrastructure/pubsub"
	"loftwork/internal/infrastructure/repository"
	httpRouter "loftwork/internal/interfaces/http"
	"loftwork/internal/shared/biztime"
	"loftwork/internal/shared/goroutine"
	"loftwork/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Loftwork dashboard server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger, ginMode == "debug"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting server",
		"environment", env,
		"auto-migrate", autoMigrate)

	if err := biztime.Init(cfg.Dashboard.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := handleMigrations(env); err != nil {
		logger.Fatal("migration handling failed", "error", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	logger.Info("redis connection established", "address", cfg.Redis.GetAddr())

	log := logger.NewLogger()

	router := httpRouter.NewRouter(database.Get(), redisClient, cfg, log)
	router.SetupRoutes()

	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()

	startSessionView(subCtx, router, redisClient, cfg, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	subCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// startSessionView wires the server-local ticket store: mutations flow
// through the use-case layer, pushed events fold in via the reconciler,
// and resolved transitions trigger a deduplicated notice email.
func startSessionView(ctx context.Context, router *httpRouter.Router, redisClient *redis.Client, cfg *config.Config, log logger.Interface) {
	ticketRepo := repository.NewTicketRepository(database.Get())
	propertyRepo := repository.NewPropertyRepository(database.Get())
	eventBus := router.EventBus()

	deduper := cache.NewResolutionDeduplicator(redisClient)
	mailer := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		NotifyTo:    cfg.Email.NotifyTo,
	})
	notifier := notification.NewResolutionService(deduper, mailer, log)

	store := view.NewStore(
		ticketusecases.NewCreateTicketUseCase(ticketRepo, eventBus, log),
		ticketusecases.NewUpdateTicketUseCase(ticketRepo, eventBus, log),
		ticketusecases.NewDeleteTicketUseCase(ticketRepo, eventBus, log),
		ticketusecases.NewListTicketsUseCase(ticketRepo, log),
		notifier,
		log,
	)
	reconciler := view.NewReconciler(store, log)
	handler := pubsub.NewReconcilerHandler(reconciler, log)

	goroutine.SafeGo(log, "ticket-event-subscriber", func() {
		if err := eventBus.Subscribe(ctx, handler); err != nil && err != context.Canceled {
			log.Errorw("ticket event subscription ended", "error", err)
		}
	})

	// Warm the store so the first dashboard read does not race the
	// subscriber. Failures here are not fatal: the store converges from
	// pushed events.
	warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := store.Load(warmCtx, ticketusecases.ListTicketsQuery{}); err != nil {
		log.Warnw("failed to warm ticket store", "error", err)
	}
	if addresses, err := propertyRepo.AddressesByID(warmCtx); err != nil {
		log.Warnw("failed to load property addresses", "error", err)
	} else {
		store.SetAddresses(addresses)
	}

	log.Infow("session view started", "tickets", store.Len())
}

func handleMigrations(environment string) error {
	if skipMigrationCheck {
		logger.Info("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		logger.Info("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Info("auto-migration completed successfully")
		return nil
	}

	logger.Info("checking migration status")

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		logger.Warn("failed to get migration scripts path", "error", err)
		return nil
	}

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	if migrateStrategy, ok := strategy.(*migration.GolangMigrateStrategy); ok {
		version, dirty, err := migrateStrategy.GetVersion(database.Get())
		if err != nil {
			logger.Warn("failed to check migration status", "error", err)
		} else {
			logger.Info("current migration version",
				"version", version,
				"dirty", dirty)
		}
	}

	logger.Info("migration check completed")

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
