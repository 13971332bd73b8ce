package models

import (
	"time"

	"gorm.io/gorm"
)

// RouteItem stored status values. Progress is explicit; it is never
// inferred from installation state (dashboards use the derived status).
const (
	ItemPendente    = "pendente"
	ItemEmProgresso = "em_progresso"
	ItemConcluido   = "concluido"
)

// Derived display status for dashboards: an open ticket wins over
// everything, then a finalized installation, then pendente.
const (
	DisplayChamadoAberto = "chamado_aberto"
	DisplayFinalizada    = "finalizada"
	DisplayPendente      = "pendente"
)

// RouteItem is one store's membership and visit order within a route.
// OrdemVisita is 1-based and kept dense per route by replace-all edits.
type RouteItem struct {
	gorm.Model

	RouteID     uint   `json:"route_id" gorm:"index"`
	StoreCode   string `json:"store_code" gorm:"index"`
	OrdemVisita int    `json:"ordem_visita"`
	Status      string `json:"status" gorm:"default:pendente"`

	PlannedDate      *time.Time `json:"planned_date"`
	ExecutionDate    *time.Time `json:"execution_date"`
	Notes            string     `json:"notes"`
	EstimatedMinutes int        `json:"estimated_minutes"`
}
