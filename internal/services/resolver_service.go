package services

import (
	"strings"

	"gorm.io/gorm"

	"rollout_tracker/internal/models"
)

// Actor match types returned by the resolver.
const (
	ActorSupplier = "supplier"
	ActorEmployee = "employee"
)

// ActorMatch is one resolver candidate, tagged with its type so the caller
// can bind an installer identity before resolving routes.
type ActorMatch struct {
	Type     string           `json:"type"`
	Supplier *models.Supplier `json:"supplier,omitempty"`
	Employee *models.Employee `json:"employee,omitempty"`
}

// ResolverService answers free-text identity queries from the field app.
type ResolverService struct {
	db *gorm.DB
}

func NewResolverService(db *gorm.DB) *ResolverService {
	return &ResolverService{db: db}
}

// Search returns supplier and employee candidates matching the query
// against name, email, CNPJ or phone. Matching is case-insensitive.
func (s *ResolverService) Search(query string) ([]ActorMatch, error) {
	q := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	matches := []ActorMatch{}
	if q == "%%" {
		return matches, nil
	}

	var suppliers []models.Supplier
	if err := s.db.
		Where("lower(name) LIKE ? OR lower(email) LIKE ? OR cnpj LIKE ?", q, q, q).
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	for i := range suppliers {
		matches = append(matches, ActorMatch{Type: ActorSupplier, Supplier: &suppliers[i]})
	}

	var employees []models.Employee
	if err := s.db.Preload("Supplier").
		Where("lower(name) LIKE ? OR phone LIKE ?", q, q).
		Find(&employees).Error; err != nil {
		return nil, err
	}
	for i := range employees {
		matches = append(matches, ActorMatch{Type: ActorEmployee, Employee: &employees[i]})
	}
	return matches, nil
}
