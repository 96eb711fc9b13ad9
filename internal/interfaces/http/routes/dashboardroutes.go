package routes

import (
	"github.com/gin-gonic/gin"

	dashboardhandlers "loftwork/internal/interfaces/http/handlers/dashboard"
)

type DashboardRouteConfig struct {
	DashboardHandler *dashboardhandlers.DashboardHandler
}

func SetupDashboardRoutes(engine *gin.Engine, config *DashboardRouteConfig) {
	dashboard := engine.Group("/dashboard")
	{
		dashboard.GET("/stats", config.DashboardHandler.GetStats)
	}
}
