package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
)

// CreateSupplier registers a new Supplier
func CreateSupplier(c *gin.Context) {
	var input models.Supplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create supplier: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"supplier": input})
}

// GetSupplier retrieves a Supplier by ID
func GetSupplier(c *gin.Context) {
	id := c.Param("id")
	var supplier models.Supplier
	if err := config.DB.Preload("Employees").First(&supplier, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

// ListSuppliers lists all Suppliers
func ListSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := config.DB.Find(&suppliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch suppliers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": suppliers})
}

// UpdateSupplier modifies an existing Supplier
func UpdateSupplier(c *gin.Context) {
	id := c.Param("id")
	var supplier models.Supplier
	if err := config.DB.First(&supplier, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	var input struct {
		Name    *string `json:"name"`
		CNPJ    *string `json:"cnpj"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.CNPJ != nil {
		supplier.CNPJ = *input.CNPJ
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.Phone != nil {
		supplier.Phone = *input.Phone
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}

	config.DB.Save(&supplier)
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

// DeleteSupplier removes a Supplier by ID
func DeleteSupplier(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Supplier{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}
