package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Recovery and request logging must be attached before any route is
	// registered to cover every handler chain.
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	AdminRoutes(r)
	FieldRoutes(r)
	InstallationRoutes(r)
	TicketRoutes(r)

	return r
}
