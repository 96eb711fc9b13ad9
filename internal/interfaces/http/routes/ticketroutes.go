package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "loftwork/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.PATCH("/:id/status",
			config.TicketHandler.UpdateTicketStatus)
		tickets.PATCH("/:id/priority",
			config.TicketHandler.UpdateTicketPriority)
		tickets.POST("/:id/move",
			config.TicketHandler.MoveTicket)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			config.TicketHandler.DeleteTicket)
	}
}
