package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
	"rollout_tracker/internal/services"
)

func ticketService() *services.TicketService {
	return services.NewTicketService(config.DB)
}

// OpenTicket records an escalation for a store the installer could not
// complete.
func OpenTicket(c *gin.Context) {
	var input services.OpenTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("OpenTicket: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ticket, err := ticketService().Open(input)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

// ResolveTicket closes a ticket; resolving twice is a no-op.
func ResolveTicket(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}
	if err := ticketService().Resolve(uint(tID)); err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket resolved"})
}

// ListTickets lists tickets, optionally filtered by store code or status.
func ListTickets(c *gin.Context) {
	query := config.DB.Model(&models.Ticket{})
	if storeCode := c.Query("store_code"); storeCode != "" {
		query = query.Where("store_code = ?", storeCode)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tickets []models.Ticket
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tickets})
}
