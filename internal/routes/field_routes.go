package routes

import (
	"rollout_tracker/internal/controllers"
	"rollout_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// FieldRoutes serves the installer app: route resolution and item
// progress for suppliers and their employees.
func FieldRoutes(r *gin.Engine) {
	field := r.Group("/field")
	field.Use(middleware.RequireAnyRole("fornecedor", "funcionario"))
	{
		field.GET("/routes", controllers.MyRoutes)
		field.PATCH("/route-items/:itemId/status", controllers.UpdateRouteItemStatus)
		field.GET("/actors", controllers.SearchActors)
		field.GET("/kits", controllers.ListKits)
		field.GET("/stores", controllers.ListStores)
	}
}
