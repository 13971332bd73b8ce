package routes

import (
	"rollout_tracker/internal/controllers"
	"rollout_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TicketRoutes(r *gin.Engine) {
	tickets := r.Group("/tickets")
	tickets.Use(middleware.RequireAnyRole("fornecedor", "funcionario", "admin"))
	{
		tickets.POST("", controllers.OpenTicket)
		tickets.GET("", controllers.ListTickets)
	}

	// Only back-office users close tickets.
	adminTickets := r.Group("/tickets")
	adminTickets.Use(middleware.RequireAuthWithRole("admin"))
	{
		adminTickets.POST("/:id/resolve", controllers.ResolveTicket)
	}
}
