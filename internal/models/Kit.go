// internal/models/kit.go
package models

import (
	"gorm.io/gorm"
)

// Kit is one fixture kit shipped to every store. The ordered kit list
// defines how many final-photo slots a submission must account for.
type Kit struct {
	gorm.Model
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position" gorm:"index"`
}
