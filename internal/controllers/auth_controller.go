package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/middleware"
	"rollout_tracker/internal/models"
)

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`

	// fornecedor role
	SupplierName string `json:"supplier_name"`
	CNPJ         string `json:"cnpj"`

	// funcionario role
	EmployeePhone string `json:"employee_phone"`
	SupplierID    uint   `json:"supplier_id"`
}

func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Role = role

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	user, err := createUserRecord(tx, input, hashedPassword)
	if err != nil {
		tx.Rollback()
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	err = createActorRecord(tx, &user, input)
	if err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "required for") ||
			strings.Contains(err.Error(), "must be assigned") ||
			strings.Contains(err.Error(), "does not exist") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create actor record: " + err.Error()})
		}
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	query := config.DB.Where("email = ?", body.Email).
		Preload("Supplier").
		Preload("Employee").
		Preload("Employee.Supplier")

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = "funcionario"
	}
	switch role {
	case "admin", "fornecedor", "funcionario":
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func createUserRecord(tx *gorm.DB, input signupInput, hashedPassword string) (models.User, error) {
	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Phone:    input.Phone,
		Role:     input.Role,
	}
	if err := tx.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func createActorRecord(tx *gorm.DB, user *models.User, input signupInput) error {
	switch user.Role {
	case "fornecedor":
		if input.SupplierName == "" {
			return errors.New("supplier_name is required for fornecedor role")
		}

		supplier := models.Supplier{
			UserID: user.ID,
			Name:   input.SupplierName,
			CNPJ:   input.CNPJ,
			Email:  input.Email,
			Phone:  input.Phone,
		}
		if err := tx.Create(&supplier).Error; err != nil {
			return err
		}
		user.Supplier = &supplier
		if err := tx.Save(user).Error; err != nil {
			return err
		}
	case "funcionario":
		if input.SupplierID == 0 {
			return errors.New("funcionario must be assigned to a supplier_id")
		}

		var existingSupplier models.Supplier
		if result := tx.First(&existingSupplier, input.SupplierID); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errors.New("supplier with the provided supplier_id does not exist")
			}
			return result.Error
		}

		employee := models.Employee{
			UserID:     user.ID,
			Name:       input.Name,
			Phone:      input.EmployeePhone,
			SupplierID: input.SupplierID,
		}
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}
		user.Employee = &employee
		if err := tx.Save(user).Error; err != nil {
			return err
		}
	}
	return nil
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"UpdatedAt": user.UpdatedAt,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
	}

	if user.Supplier != nil {
		responseUser["supplier"] = gin.H{
			"ID":        user.Supplier.ID,
			"CreatedAt": user.Supplier.CreatedAt,
			"UpdatedAt": user.Supplier.UpdatedAt,
			"name":      user.Supplier.Name,
			"cnpj":      user.Supplier.CNPJ,
			"email":     user.Supplier.Email,
			"phone":     user.Supplier.Phone,
		}
		responseUser["supplier_id"] = user.Supplier.ID
	}
	if user.Employee != nil {
		employeeMap := gin.H{
			"ID":          user.Employee.ID,
			"CreatedAt":   user.Employee.CreatedAt,
			"UpdatedAt":   user.Employee.UpdatedAt,
			"name":        user.Employee.Name,
			"phone":       user.Employee.Phone,
			"supplier_id": user.Employee.SupplierID,
		}
		if user.Employee.Supplier.ID != 0 {
			employeeMap["supplier"] = gin.H{
				"ID":   user.Employee.Supplier.ID,
				"name": user.Employee.Supplier.Name,
			}
		}
		responseUser["employee"] = employeeMap
		if user.Employee.SupplierID != 0 {
			responseUser["supplier_id"] = user.Employee.SupplierID
		}
	}
	return responseUser
}
