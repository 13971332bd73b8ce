package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
	"rollout_tracker/internal/services"
)

func routeService() *services.RouteService {
	return services.NewRouteService(config.DB)
}

// CreateRoute registers a route for a supplier (admin action).
func CreateRoute(c *gin.Context) {
	var input struct {
		Name         string     `json:"name" binding:"required"`
		SupplierID   uint       `json:"supplier_id" binding:"required"`
		Status       string     `json:"status"`
		Observations string     `json:"observations"`
		PlannedDate  *time.Time `json:"planned_date"`
		StoreCodes   []string   `json:"store_codes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	createdBy := uint(c.MustGet("user_id").(float64))
	svc := routeService()
	route, err := svc.CreateRoute(services.CreateRouteInput{
		Name:         input.Name,
		SupplierID:   input.SupplierID,
		Status:       input.Status,
		Observations: input.Observations,
		PlannedDate:  input.PlannedDate,
		CreatedBy:    createdBy,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	if len(input.StoreCodes) > 0 {
		if err := svc.SetRouteStores(route.ID, input.StoreCodes); err != nil {
			abortServiceError(c, err)
			return
		}
	}

	config.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("ordem_visita") }).First(route, route.ID)
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// SetRouteStores replaces the full store list of a route.
func SetRouteStores(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var input struct {
		StoreCodes []string `json:"store_codes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := routeService()
	if err := svc.SetRouteStores(uint(rID), input.StoreCodes); err != nil {
		abortServiceError(c, err)
		return
	}

	var route models.Route
	config.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("ordem_visita") }).First(&route, uint(rID))
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// SetRouteEmployees replaces the employee assignment of a route.
func SetRouteEmployees(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var input struct {
		EmployeeIDs []uint `json:"employee_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := routeService()
	if err := svc.SetRouteEmployees(uint(rID), input.EmployeeIDs); err != nil {
		abortServiceError(c, err)
		return
	}

	var route models.Route
	config.DB.Preload("Employees").First(&route, uint(rID))
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// UpdateRoute handles partial metadata updates on an existing route.
func UpdateRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: Invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var input services.UpdateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: Invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := routeService().UpdateRoute(uint(rID), input)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// FinishRoute closes a route one-way; item statuses stay as they are.
func FinishRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}
	if err := routeService().FinishRoute(uint(rID)); err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route finished"})
}

// DeleteRoute removes a route with its items and employee associations.
func DeleteRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}
	if err := routeService().DeleteRoute(uint(rID)); err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}

// GetRoute returns a single route with items and assigned employees.
func GetRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("ordem_visita") }).
		Preload("Employees").
		First(&route, uint(rID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("GetRoute: database error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error, try again later"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// ListRoutes returns all routes, optionally filtered by supplier or status.
func ListRoutes(c *gin.Context) {
	query := config.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("ordem_visita") })
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var routes []models.Route
	if err := query.Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch routes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GetRouteStats returns the fleet-level aggregates for the dashboard.
func GetRouteStats(c *gin.Context) {
	stats, err := routeService().Stats()
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// MyRoutes resolves the authenticated actor's active routes with their
// member stores in visit order.
func MyRoutes(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))
	role := c.MustGet("role").(string)

	var actorID uint
	switch role {
	case "fornecedor":
		var supplier models.Supplier
		if err := config.DB.Where("user_id = ?", userID).First(&supplier).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "No supplier profile for this user"})
			return
		}
		actorID = supplier.ID
	case "funcionario":
		var employee models.Employee
		if err := config.DB.Where("user_id = ?", userID).First(&employee).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "No employee profile for this user"})
			return
		}
		actorID = employee.ID
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Only field actors have routes"})
		return
	}

	routes, err := routeService().ResolveRoutesForActor(actorID, role)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// UpdateRouteItemStatus advances one route item through its workflow.
func UpdateRouteItemStatus(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := routeService().UpdateItemStatus(uint(itemID), input.Status)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}
