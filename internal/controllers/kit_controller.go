package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
)

// CreateKit registers a new fixture kit
func CreateKit(c *gin.Context) {
	var input models.Kit
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create kit: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"kit": input})
}

// ListKits returns the kit inventory in position order. Its length defines
// how many final-photo slots a submission has right now.
func ListKits(c *gin.Context) {
	var kits []models.Kit
	if err := config.DB.Order("position").Find(&kits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch kits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": kits})
}

// UpdateKit modifies an existing Kit
func UpdateKit(c *gin.Context) {
	id := c.Param("id")
	var kit models.Kit
	if err := config.DB.First(&kit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kit not found"})
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Position    *int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		kit.Name = *input.Name
	}
	if input.Description != nil {
		kit.Description = *input.Description
	}
	if input.Position != nil {
		kit.Position = *input.Position
	}

	config.DB.Save(&kit)
	c.JSON(http.StatusOK, gin.H{"kit": kit})
}

// DeleteKit removes a Kit by ID
func DeleteKit(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Kit{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete kit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kit deleted"})
}
