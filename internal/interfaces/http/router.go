package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	dashboardusecases "loftwork/internal/application/dashboard/usecases"
	ticketusecases "loftwork/internal/application/ticket/usecases"
	"loftwork/internal/infrastructure/config"
	"loftwork/internal/infrastructure/pubsub"
	"loftwork/internal/infrastructure/repository"
	dashboardhandlers "loftwork/internal/interfaces/http/handlers/dashboard"
	tickethandlers "loftwork/internal/interfaces/http/handlers/ticket"
	"loftwork/internal/interfaces/http/middleware"
	"loftwork/internal/interfaces/http/routes"
	"loftwork/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine           *gin.Engine
	ticketHandler    *tickethandlers.TicketHandler
	dashboardHandler *dashboardhandlers.DashboardHandler
	eventBus         *pubsub.RedisTicketEventBus
	cfg              *config.Config
	logger           logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	ticketRepo := repository.NewTicketRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)

	eventBus := pubsub.NewRedisTicketEventBus(redisClient, log)

	createUC := ticketusecases.NewCreateTicketUseCase(ticketRepo, eventBus, log)
	updateUC := ticketusecases.NewUpdateTicketUseCase(ticketRepo, eventBus, log)
	deleteUC := ticketusecases.NewDeleteTicketUseCase(ticketRepo, eventBus, log)
	getUC := ticketusecases.NewGetTicketUseCase(ticketRepo, log)
	listUC := ticketusecases.NewListTicketsUseCase(ticketRepo, log)
	changeStatusUC := ticketusecases.NewChangeStatusUseCase(ticketRepo, eventBus, log)
	changePriorityUC := ticketusecases.NewChangePriorityUseCase(ticketRepo, eventBus, log)
	moveUC := ticketusecases.NewMoveTicketUseCase(ticketRepo, eventBus, log)

	getStatsUC := dashboardusecases.NewGetDashboardStatsUseCase(
		ticketRepo, propertyRepo, leaseRepo, cashFlowRepo, cfg.Dashboard, log,
	)

	ticketHandler := tickethandlers.NewTicketHandler(
		createUC, updateUC, deleteUC, getUC, listUC,
		changeStatusUC, changePriorityUC, moveUC,
	)
	dashboardHandler := dashboardhandlers.NewDashboardHandler(getStatsUC)

	return &Router{
		engine:           engine,
		ticketHandler:    ticketHandler,
		dashboardHandler: dashboardHandler,
		eventBus:         eventBus,
		cfg:              cfg,
		logger:           log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler: r.ticketHandler,
	})
	routes.SetupDashboardRoutes(r.engine, &routes.DashboardRouteConfig{
		DashboardHandler: r.dashboardHandler,
	})
}

// EventBus exposes the ticket event bus for background consumers.
func (r *Router) EventBus() *pubsub.RedisTicketEventBus {
	return r.eventBus
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
