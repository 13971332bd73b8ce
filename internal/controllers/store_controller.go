package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
)

// CreateStore registers a new Store
func CreateStore(c *gin.Context) {
	var input models.Store
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create store: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"store": input})
}

// GetStoreByCode retrieves a Store by its business code
func GetStoreByCode(c *gin.Context) {
	code := c.Param("code")
	var store models.Store
	if err := config.DB.Where("code = ?", code).First(&store).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": store})
}

// ListStores lists stores with optional free-text and city filters
func ListStores(c *gin.Context) {
	query := config.DB.Model(&models.Store{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(code) LIKE ?", like, like)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var stores []models.Store
	if err := query.Order("code").Find(&stores).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch stores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stores})
}

// UpdateStore modifies an existing Store
func UpdateStore(c *gin.Context) {
	code := c.Param("code")
	var store models.Store
	if err := config.DB.Where("code = ?", code).First(&store).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	var input struct {
		Name    *string `json:"name"`
		City    *string `json:"city"`
		State   *string `json:"state"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.City != nil {
		store.City = *input.City
	}
	if input.State != nil {
		store.State = *input.State
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.Phone != nil {
		store.Phone = *input.Phone
	}

	config.DB.Save(&store)
	c.JSON(http.StatusOK, gin.H{"store": store})
}

// DeleteStore removes a Store by code
func DeleteStore(c *gin.Context) {
	code := c.Param("code")
	if err := config.DB.Where("code = ?", code).Delete(&models.Store{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}
