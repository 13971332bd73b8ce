package routes

import (
	"rollout_tracker/internal/controllers"
	"rollout_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func InstallationRoutes(r *gin.Engine) {
	inst := r.Group("/installations")
	inst.Use(middleware.RequireAnyRole("fornecedor", "funcionario", "admin"))
	{
		inst.POST("", controllers.SubmitInstallation)
		inst.POST("/legacy", controllers.SubmitInstallationLegacy)
		inst.GET("/:storeCode", controllers.GetInstallationStatus)
		inst.POST("/:storeCode/finalize", controllers.FinalizeInstallation)
	}
}
