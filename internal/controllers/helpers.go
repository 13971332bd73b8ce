package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rollout_tracker/internal/services"
)

// abortServiceError maps the service error taxonomy onto HTTP responses.
// Validation and referential errors carry their message so the client can
// correct the input; persistence failures get a generic retry message.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("unexpected service failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error, try again later"})
	}
}
