package models

import (
	"time"

	"gorm.io/gorm"
)

// Route status values. Transitions only move forward except the
// ativa↔inativa toggle; finalizada and concluida accept no new items.
const (
	RouteAtiva      = "ativa"
	RouteInativa    = "inativa"
	RouteConcluida  = "concluida"
	RouteFinalizada = "finalizada"
)

// Route is an ordered visit list of stores assigned to a supplier.
// A supplier can have multiple routes; each route has many items and assigned employees.
type Route struct {
	gorm.Model

	Name         string `json:"name" binding:"required"`
	SupplierID   uint   `json:"supplier_id"`
	Status       string `json:"status" gorm:"default:ativa;index"`
	Observations string `json:"observations"`

	PlannedDate   *time.Time `json:"planned_date"`
	ExecutionDate *time.Time `json:"execution_date"`
	CreatedBy     uint       `json:"created_by"`

	// Associations
	Items     []RouteItem `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
	Employees []Employee  `gorm:"many2many:route_employees;" json:"employees,omitempty"`
}

// Terminal reports whether the route no longer accepts membership edits.
func (r *Route) Terminal() bool {
	return r.Status == RouteFinalizada || r.Status == RouteConcluida
}
