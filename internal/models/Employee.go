// internal/models/employee.go
package models

import (
	"gorm.io/gorm"
)

type Employee struct {
	gorm.Model
	UserID     uint     `json:"user_id" gorm:"unique"` // Foreign key to User
	User       User     `gorm:"foreignKey:UserID"`     // User association
	Name       string   `json:"name"`                  // Installer's field name (if different from User.Name)
	Phone      string   `json:"phone"`
	SupplierID uint     `json:"supplier_id"` // Foreign key to Supplier
	Supplier   Supplier `gorm:"foreignKey:SupplierID"`
	// Email, Password and Role live on the User model.
}
