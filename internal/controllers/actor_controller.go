package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/services"
)

// SearchActors answers the free-text identity lookup the field app uses
// before resolving routes: candidates come back tagged supplier/employee.
func SearchActors(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	matches, err := services.NewResolverService(config.DB).Search(query)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": matches})
}
