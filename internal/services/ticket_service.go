package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rollout_tracker/internal/models"
)

// TicketService is the escalation hook: installers open tickets against a
// store, and dashboards read the open ones to flag the store as blocked.
// Nothing here writes back into route-item status.
type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// OpenTicketInput carries one escalation from the field.
type OpenTicketInput struct {
	StoreCode      string `json:"store_code"`
	Description    string `json:"description"`
	InstallerName  string `json:"installer_name"`
	OccurrenceDate string `json:"occurrence_date"`
	SupplierID     *uint  `json:"supplier_id"`
}

// Open creates a ticket with status aberto and a fresh protocol number.
func (s *TicketService) Open(input OpenTicketInput) (*models.Ticket, error) {
	if strings.TrimSpace(input.StoreCode) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrTicketIncomplete
	}
	var store models.Store
	if err := s.db.Where("code = ?", input.StoreCode).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	ticket := models.Ticket{
		Protocol:       uuid.NewString(),
		StoreCode:      input.StoreCode,
		SupplierID:     input.SupplierID,
		Status:         models.TicketAberto,
		Description:    input.Description,
		InstallerName:  input.InstallerName,
		OccurrenceDate: input.OccurrenceDate,
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Resolve closes a ticket. Resolving twice is a no-op.
func (s *TicketService) Resolve(ticketID uint) error {
	var ticket models.Ticket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		return err
	}
	if ticket.Status == models.TicketResolvido {
		return nil
	}
	return s.db.Model(&ticket).Update("status", models.TicketResolvido).Error
}

// ListByStore returns every ticket for a store, newest first.
func (s *TicketService) ListByStore(storeCode string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.Where("store_code = ?", storeCode).Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}
