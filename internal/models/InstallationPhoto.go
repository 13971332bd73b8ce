package models

import (
	"gorm.io/gorm"
)

// The four fixed original-photo slots every store requires.
const (
	SlotFrente          = "frente"
	SlotInterna         = "interna"
	SlotInternaDireita  = "interna_direita"
	SlotInternaEsquerda = "interna_esquerda"
)

// OriginalSlots lists the fixed slots in display order.
var OriginalSlots = []string{SlotFrente, SlotInterna, SlotInternaDireita, SlotInternaEsquerda}

// OriginalPhoto is one of the 4 fixed-slot store photos taken before
// installation. Rows are keyed by store code and replaced wholesale on
// every submission.
type OriginalPhoto struct {
	gorm.Model
	StoreCode string `json:"store_code" gorm:"index;not null"`
	Slot      string `json:"slot" gorm:"not null"`
	Ref       string `json:"ref"`
}

// FinalPhoto is one per-kit proof photo taken after installation.
// KitIndex is the 0-based position in the kit inventory at submission time.
type FinalPhoto struct {
	gorm.Model
	StoreCode string `json:"store_code" gorm:"index;not null"`
	KitIndex  int    `json:"kit_index"`
	Ref       string `json:"ref"`
}
