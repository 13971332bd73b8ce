package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
)

// updateEmployeeInput defines the fields a client can send to update an
// installer profile. User-level fields land on the associated User.
type updateEmployeeInput struct {
	UserName     *string `json:"name"`
	UserEmail    *string `json:"email"`
	UserPhone    *string `json:"phone"`
	UserPassword *string `json:"password"`

	FieldPhone *string `json:"employee_phone"`
	SupplierID *uint   `json:"supplier_id"`
}

// GetEmployee fetches one installer by the UserID of their account.
func GetEmployee(c *gin.Context) {
	userIDStr := c.Param("id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID format."})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ? AND role = ?", uint(userID), "funcionario").
		Preload("Employee").
		Preload("Employee.Supplier").
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee user not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}

// ListEmployeesBySupplier returns every installer working for a supplier.
func ListEmployeesBySupplier(c *gin.Context) {
	sIDStr := c.Param("id")
	sID, err := strconv.ParseUint(sIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID format"})
		return
	}

	var employees []models.Employee
	if err := config.DB.Where("supplier_id = ?", uint(sID)).Find(&employees).Error; err != nil {
		logrus.WithError(err).Error("Error fetching employees by supplier ID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employees})
}

// UpdateEmployee modifies an installer profile and, when needed, the
// associated user record.
func UpdateEmployee(c *gin.Context) {
	userIDStr := c.Param("id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User ID format."})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ? AND role = ?", uint(userID), "funcionario").
		Preload("Employee").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee user not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	if user.Employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No employee profile for this user."})
		return
	}

	var input updateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	if input.UserName != nil {
		user.Name = *input.UserName
		user.Employee.Name = *input.UserName
	}
	if input.UserEmail != nil {
		user.Email = *input.UserEmail
	}
	if input.UserPhone != nil {
		user.Phone = *input.UserPhone
	}
	if input.UserPassword != nil {
		hashed, err := hashPassword(*input.UserPassword)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		user.Password = hashed
	}
	if input.FieldPhone != nil {
		user.Employee.Phone = *input.FieldPhone
	}
	if input.SupplierID != nil {
		var supplier models.Supplier
		if err := tx.First(&supplier, *input.SupplierID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "supplier with the provided supplier_id does not exist"})
			return
		}
		user.Employee.SupplierID = *input.SupplierID
	}

	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user: " + err.Error()})
		return
	}
	if err := tx.Save(user.Employee).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update employee: " + err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}
