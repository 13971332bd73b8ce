// internal/models/supplier.go
package models

import (
	"gorm.io/gorm"
)

// Supplier represents an installation company contracted for the rollout.
// A supplier owns routes and employs the installers that execute them.
type Supplier struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	Name    string `json:"name" binding:"required"`
	CNPJ    string `gorm:"unique" json:"cnpj"`
	Email   string `gorm:"unique;not null" json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	Employees []Employee `gorm:"foreignKey:SupplierID" json:"employees,omitempty"`
	Routes    []Route    `gorm:"foreignKey:SupplierID" json:"routes,omitempty"`
}
