package routes

import (
	"rollout_tracker/internal/controllers"
	"rollout_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AdminRoutes owns the administrative plumbing: suppliers, stores, kits
// and the route lifecycle actions only back-office users may perform.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/suppliers", controllers.CreateSupplier)
		admin.GET("/suppliers", controllers.ListSuppliers)
		admin.GET("/suppliers/:id", controllers.GetSupplier)
		admin.PUT("/suppliers/:id", controllers.UpdateSupplier)
		admin.DELETE("/suppliers/:id", controllers.DeleteSupplier)
		admin.GET("/suppliers/:id/employees", controllers.ListEmployeesBySupplier)

		admin.GET("/employees/:id", controllers.GetEmployee)
		admin.PUT("/employees/:id", controllers.UpdateEmployee)

		admin.POST("/stores", controllers.CreateStore)
		admin.GET("/stores", controllers.ListStores)
		admin.GET("/stores/:code", controllers.GetStoreByCode)
		admin.PUT("/stores/:code", controllers.UpdateStore)
		admin.DELETE("/stores/:code", controllers.DeleteStore)

		admin.POST("/kits", controllers.CreateKit)
		admin.GET("/kits", controllers.ListKits)
		admin.PUT("/kits/:id", controllers.UpdateKit)
		admin.DELETE("/kits/:id", controllers.DeleteKit)

		admin.POST("/routes", controllers.CreateRoute)
		admin.GET("/routes", controllers.ListRoutes)
		admin.GET("/routes/:id", controllers.GetRoute)
		admin.PUT("/routes/:id", controllers.UpdateRoute)
		admin.PATCH("/routes/:id/stores", controllers.SetRouteStores)
		admin.PATCH("/routes/:id/employees", controllers.SetRouteEmployees)
		admin.POST("/routes/:id/finish", controllers.FinishRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)
		admin.GET("/stats/routes", controllers.GetRouteStats)
	}
}
