// internal/models/store.go
package models

import (
	"gorm.io/gorm"
)

// Store is a retail point of sale. Code is the business code printed on
// work orders; route items, installations and photos all key on it rather
// than the numeric id.
type Store struct {
	gorm.Model
	Code    string `json:"code" gorm:"uniqueIndex;not null" binding:"required"`
	Name    string `json:"name" binding:"required"`
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
