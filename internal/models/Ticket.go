package models

import (
	"gorm.io/gorm"
)

const (
	TicketAberto    = "aberto"
	TicketResolvido = "resolvido"
)

// Ticket is an escalation raised when an installer cannot complete a
// store. Any open ticket marks the store as blocked in dashboard
// projections; the stored route-item status is untouched.
type Ticket struct {
	gorm.Model
	Protocol   string `json:"protocol" gorm:"uniqueIndex"`
	StoreCode  string `json:"store_code" gorm:"index;not null"`
	SupplierID *uint  `json:"supplier_id"`

	Status         string `json:"status" gorm:"default:aberto;index"`
	Description    string `json:"description"`
	InstallerName  string `json:"installer_name"`
	OccurrenceDate string `json:"occurrence_date"`
}
